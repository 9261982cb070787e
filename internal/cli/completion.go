package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# logreport bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(logreport completion bash)"

_logreport_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="config version completion"
    local flags="-v --verbose --config --top --strict --match --workers --timeout"
    local formats="markdown adoc asciidoc text json"

    case "${prev}" in
        --config)
            _filedir '@(yaml|yml)'
            return
            ;;
        --top|--workers|--timeout|--match)
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    # positional: <source> [from] [to] [format]
    local args=0 i
    for ((i = 1; i < cword; i++)); do
        case "${words[i]}" in
            --config|--top|--workers|--timeout|--match) ((i++)) ;;
            -*) ;;
            *) ((args++)) ;;
        esac
    done

    case ${args} in
        0)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            _filedir
            ;;
        1|2)
            COMPREPLY=($(compgen -W "-" -- "${cur}"))
            ;;
        3)
            COMPREPLY=($(compgen -W "${formats}" -- "${cur}"))
            ;;
    esac
}

complete -F _logreport_completions logreport
`

const zshCompletion = `#compdef logreport
# logreport zsh completion script
# Add to ~/.zshrc:
#   eval "$(logreport completion zsh)"

_logreport() {
    local -a commands
    commands=(
        'config:Show configuration'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a opts
    opts=(
        '-v[Show debug diagnostics on stderr]'
        '--verbose[Show debug diagnostics on stderr]'
        '--config[Config file]:file:_files -g "*.(yaml|yml)"'
        '--top[Entries kept in each top-N table]:count:'
        '--strict[Fail on the first malformed line]'
        '--match[Only count requests matching this regular expression]:regex:'
        '--workers[Files read concurrently]:count:'
        '--timeout[HTTP timeout for URL sources]:duration:'
    )

    case $words[2] in
        config)
            _arguments '2:action:(show path generate)' '--json[Output as JSON]'
            ;;
        completion)
            _arguments '2:shell:(bash zsh fish)'
            ;;
        version)
            _arguments '--json[Output as JSON]'
            ;;
        *)
            _arguments \
                $opts \
                '1:source:_files' \
                '2:from (RFC 3339 or -):' \
                '3:to (RFC 3339 or -):' \
                '4:format:(markdown adoc asciidoc text json)'
            if (( CURRENT == 2 )); then
                _describe 'command' commands
            fi
            ;;
    esac
}

compdef _logreport logreport
`

const fishCompletion = `# logreport fish completion script
# Add to ~/.config/fish/completions/logreport.fish

# Commands
complete -c logreport -n "__fish_use_subcommand" -a "config" -d "Show configuration"
complete -c logreport -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c logreport -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c logreport -s v -l verbose -d "Show debug diagnostics on stderr"
complete -c logreport -l config -d "Config file" -r -F

# Report flags
complete -c logreport -l top -d "Entries kept in each top-N table" -x
complete -c logreport -l strict -d "Fail on the first malformed line"
complete -c logreport -l match -d "Only count requests matching this regular expression" -x
complete -c logreport -l workers -d "Files read concurrently" -x
complete -c logreport -l timeout -d "HTTP timeout for URL sources" -x

# Formats
complete -c logreport -n "not __fish_seen_subcommand_from config version completion" -a "markdown adoc asciidoc text json"

# Config command
complete -c logreport -n "__fish_seen_subcommand_from config" -a "show path generate"
complete -c logreport -n "__fish_seen_subcommand_from config version" -l json -d "Output as JSON"

# Completion command
complete -c logreport -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
