package shell

// BashPlugin is the bash plugin source. Directory changes are detected from
// PROMPT_COMMAND; commands are reported from a DEBUG trap that fires once
// per prompt.
const BashPlugin = `# pathwise shell plugin, auto-generated, do not edit manually
# Source this file from your ~/.bashrc:
#   source ~/.config/pathwise/pathwise.plugin.bash

_pathwise_bin="${PATHWISE_BIN:-pathwise}"
_PATHWISE_DIR="" _PATHWISE_ENTER="" _PATHWISE_START=""
_pathwise_last_pwd=""
_pathwise_armed=""

_pathwise_chpwd() {
  eval "$(command "$_pathwise_bin" hook chpwd \
    --dir "$_PATHWISE_DIR" --enter "$_PATHWISE_ENTER" --start "$_PATHWISE_START" 2>/dev/null)"
}

_pathwise_prompt() {
  if [[ "$PWD" != "$_pathwise_last_pwd" ]]; then
    _pathwise_last_pwd="$PWD"
    _pathwise_chpwd
  fi
  _pathwise_armed=1
}

_pathwise_preexec() {
  [[ -n "$_pathwise_armed" ]] || return
  [[ -n "$COMP_LINE" ]] && return
  _pathwise_armed=""
  local typed expanded first rest
  typed="$(HISTTIMEFORMAT= history 1 | sed 's/^ *[0-9]* *//')"
  first="${typed%% *}"
  rest=""
  [[ "$typed" == *" "* ]] && rest=" ${typed#* }"
  expanded="${BASH_ALIASES[$first]:-$first}$rest"
  ( command "$_pathwise_bin" hook preexec -- "$typed" "$expanded" >/dev/null 2>&1 & )
}

_pathwise_exit() {
  command "$_pathwise_bin" hook exit \
    --dir "$_PATHWISE_DIR" --enter "$_PATHWISE_ENTER" --start "$_PATHWISE_START" >/dev/null 2>&1
}

# Keep any EXIT trap already set and run it after ours.
_pathwise_prev_exit_trap="${_pathwise_prev_exit_trap:-}"
_pathwise_save_exit_trap() {
  [[ "$3" == _pathwise_on_exit ]] || _pathwise_prev_exit_trap="$3"
}
eval "_pathwise_save_exit_trap $(trap -p EXIT)"

_pathwise_on_exit() {
  _pathwise_exit
  if [[ -n "$_pathwise_prev_exit_trap" ]]; then
    eval "$_pathwise_prev_exit_trap"
  fi
}

_pathwise_git() {
  command git "$@"
  local rc=$?
  if [[ "$1" == "commit" && $rc -eq 0 ]]; then
    command "$_pathwise_bin" hook commit >/dev/null 2>&1
  fi
  return $rc
}
alias git='_pathwise_git'

wfreq() {
  command "$_pathwise_bin" "$@"
  local rc=$?
  eval "$(command "$_pathwise_bin" aliases 2>/dev/null)"
  return $rc
}

# _pathwise_prompt runs last so the trap is only armed for the next typed line.
if [[ "$PROMPT_COMMAND" != *_pathwise_prompt* ]]; then
  PROMPT_COMMAND="${PROMPT_COMMAND:+$PROMPT_COMMAND$'\n'}_pathwise_prompt"
fi
trap '_pathwise_preexec' DEBUG
trap '_pathwise_on_exit' EXIT

if [[ $- == *i* ]]; then
  eval "$(command "$_pathwise_bin" aliases 2>/dev/null)"
fi
`
