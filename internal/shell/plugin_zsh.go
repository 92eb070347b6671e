package shell

// ZshPlugin is the zsh plugin source. The chpwd hook evals the state the
// binary prints back; preexec reports each command in the background.
const ZshPlugin = `# pathwise shell plugin, auto-generated, do not edit manually
# Source this file from your ~/.zshrc:
#   source ~/.config/pathwise/pathwise.plugin.zsh

_pathwise_bin="${PATHWISE_BIN:-pathwise}"
typeset -g _PATHWISE_DIR="" _PATHWISE_ENTER="" _PATHWISE_START=""

_pathwise_chpwd() {
  eval "$(command "$_pathwise_bin" hook chpwd \
    --dir "$_PATHWISE_DIR" --enter "$_PATHWISE_ENTER" --start "$_PATHWISE_START" 2>/dev/null)"
}

_pathwise_preexec() {
  # $1 is the line as typed, $3 the line after alias expansion.
  command "$_pathwise_bin" hook preexec -- "$1" "$3" >/dev/null 2>&1 &!
}

_pathwise_exit() {
  command "$_pathwise_bin" hook exit \
    --dir "$_PATHWISE_DIR" --enter "$_PATHWISE_ENTER" --start "$_PATHWISE_START" >/dev/null 2>&1
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

autoload -Uz add-zsh-hook
add-zsh-hook chpwd _pathwise_chpwd
add-zsh-hook preexec _pathwise_preexec
add-zsh-hook zshexit _pathwise_exit

if [[ -o interactive ]]; then
  eval "$(command "$_pathwise_bin" aliases 2>/dev/null)"
  _pathwise_chpwd
fi
`
