// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/meta"
)

const bashCompletionScript = `# bash completion for f1ctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_f1ctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "wq sq cq ui cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tz --tldr --schema"

    case "$cmd" in
        wq)
            local opts="$common --year -y --api"
            ;;
        sq)
            local opts="$common --year -y --api --chop"
            ;;
        cq)
            local opts="$common --year -y --api --all"
            ;;
        ui)
            local opts="--year -y --api --tz --tldr"
            ;;
        cache)
            local opts="$common --path"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml raw ics" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _f1ctl f1ctl
`

const zshCompletionScript = `#compdef f1ctl

_f1ctl() {
  local -a cmds
  cmds=(
    'wq:weekend query'
    'sq:season query'
    'cq:circuit query'
    'ui:interactive season browser'
    'cache:list cached API responses'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw ics)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tz[timezone]:timezone'
  '--tldr[show tldr page]'
  '--schema[dump schema]'
  )

  local -a season
  season=(
  '(-y --year)'{-y,--year}'[season]:year'
  '--api[schedule API base URL]:url'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'f1ctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    wq)
      _arguments -C $common $season '::circuitId'
      ;;
    sq)
      _arguments -C $common $season '--chop[chop common race name suffix]'
      ;;
    cq)
      _arguments -C $common $season '--all[every circuit ever raced]'
      ;;
    ui)
      _arguments -C $season '--tz[timezone]:timezone' '--tldr[show tldr page]'
      ;;
    cache)
      _arguments -C $common '--path[print the cache directory]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _f1ctl f1ctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)
	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: f1ctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "f1ctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
