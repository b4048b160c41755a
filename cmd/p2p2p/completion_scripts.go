package main

import (
	"fmt"
	"io"
	"strings"
)

// flagNames returns the spellings of a flag, long form first.
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func commandNames(commands []commandDef) []string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}
	return names
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
// It returns nil when any pattern is not a plain extension glob.
func globExtensions(glob string) []string {
	var exts []string
	for _, p := range strings.Split(glob, ",") {
		ext, ok := strings.CutPrefix(strings.TrimSpace(p), "*.")
		if !ok || ext == "" {
			return nil
		}
		exts = append(exts, ext)
	}
	return exts
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, commands []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for p2p2p\n")
	b.WriteString("_p2p2p_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(commandNames(commands), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 && !cmd.TakesFiles && len(cmd.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		writeBashFlagValues(&b, cmd.Flags)

		if len(cmd.Flags) > 0 {
			var all []string
			for _, f := range cmd.Flags {
				all = append(all, flagNames(f)...)
			}
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(all, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(cmd.Args) > 0:
			b.WriteString("        if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(cmd.Args, " "))
			b.WriteString("        fi\n")
		case cmd.TakesFiles:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\") )\n", cmd.FilePattern)
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _p2p2p_completions p2p2p\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeBashFlagValues completes the value of the flag just typed.
func writeBashFlagValues(b *strings.Builder, flags []flagDef) {
	var files, dirs, plain []string
	var enums []flagDef
	for _, f := range flags {
		switch f.Type {
		case flagBool:
		case flagEnum:
			enums = append(enums, f)
		case flagFile:
			files = append(files, flagNames(f)...)
		case flagDir:
			dirs = append(dirs, flagNames(f)...)
		default:
			plain = append(plain, flagNames(f)...)
		}
	}
	if len(enums)+len(files)+len(dirs)+len(plain) == 0 {
		return
	}

	b.WriteString("        case \"$prev\" in\n")
	for _, f := range enums {
		fmt.Fprintf(b, "        %s)\n", strings.Join(flagNames(f), "|"))
		fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(f.Values, " "))
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	if len(files) > 0 {
		fmt.Fprintf(b, "        %s)\n", strings.Join(files, "|"))
		b.WriteString("            COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	if len(dirs) > 0 {
		fmt.Fprintf(b, "        %s)\n", strings.Join(dirs, "|"))
		b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	if len(plain) > 0 {
		fmt.Fprintf(b, "        %s)\n", strings.Join(plain, "|"))
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshDescEscaper quotes descriptions for single-quoted _arguments specs.
var zshDescEscaper = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`)

func generateZsh(w io.Writer, commands []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef p2p2p\n\n")
	b.WriteString("_p2p2p() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshDescEscaper.Replace(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, cmd := range commands {
		specs := make([]string, 0, len(cmd.Flags)+1)
		for _, f := range cmd.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(cmd.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(cmd.Args, " ")))
		case cmd.TakesFiles:
			specs = append(specs, "'*:file:"+zshFiles(cmd.FilePattern)+"'")
		}
		if len(specs) == 0 {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		b.WriteString("        _arguments \\\n")
		for i, spec := range specs {
			b.WriteString("            " + spec)
			if i < len(specs)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _p2p2p p2p2p\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec builds one _arguments spec, e.g.
// '(-c --config)'{-c,--config}'[config file]:file:_files -g "*.(yaml|yml)"'.
func zshFlagSpec(f flagDef) string {
	var arg string
	switch f.Type {
	case flagBool:
	case flagEnum:
		arg = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		arg = ":file:" + zshFiles(f.FileGlob)
	case flagDir:
		arg = ":directory:_files -/"
	default:
		arg = ":value: "
	}

	desc := "[" + zshDescEscaper.Replace(f.Desc) + "]" + arg
	if f.Short == "" {
		return "'--" + f.Long + desc + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, desc)
}

func zshFiles(glob string) string {
	exts := globExtensions(glob)
	switch len(exts) {
	case 0:
		return "_files"
	case 1:
		return `_files -g "*.` + exts[0] + `"`
	default:
		return `_files -g "*.(` + strings.Join(exts, "|") + `)"`
	}
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func generateFish(w io.Writer, commands []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for p2p2p\n\n")
	b.WriteString("function __fish_p2p2p_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_p2p2p_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c p2p2p -f\n\n")

	for _, cmd := range commands {
		fmt.Fprintf(&b, "complete -c p2p2p -n __fish_p2p2p_needs_command -a %s -d '%s'\n", cmd.Name, fishEscaper.Replace(cmd.Desc))
	}

	for _, cmd := range commands {
		cond := fmt.Sprintf("'__fish_p2p2p_using_command %s'", cmd.Name)
		if len(cmd.Flags) > 0 || cmd.TakesFiles || len(cmd.Args) > 0 {
			b.WriteString("\n")
		}
		for _, f := range cmd.Flags {
			line := "complete -c p2p2p -n " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile, flagDir:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscaper.Replace(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
		switch {
		case len(cmd.Args) > 0:
			fmt.Fprintf(&b, "complete -c p2p2p -n %s -a '%s'\n", cond, strings.Join(cmd.Args, " "))
		case cmd.TakesFiles:
			fmt.Fprintf(&b, "complete -c p2p2p -n %s -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, psQuote(it))
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(w io.Writer, commands []commandDef) error {
	var b strings.Builder

	b.WriteString("# powershell completion for p2p2p\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName p2p2p -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(cmd.Name), psQuote(cmd.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, cmd := range commands {
		if len(cmd.Flags) == 0 {
			continue
		}
		var names []string
		for _, f := range cmd.Flags {
			names = append(names, flagNames(f)...)
		}
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(cmd.Name), psList(names))
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, cmd := range commands {
		for _, f := range cmd.Flags {
			if f.Type != flagEnum {
				continue
			}
			for _, name := range flagNames(f) {
				fmt.Fprintf(&b, "        %s = %s\n", psQuote(cmd.Name+" "+name), psList(f.Values))
			}
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $positional = @{\n")
	for _, cmd := range commands {
		if len(cmd.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(cmd.Name), psList(cmd.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') {
        $elements = @($elements | Select-Object -SkipLast 1)
    }

    if ($elements.Count -le 1) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $cmd = $elements[1]
    $key = "$cmd $($elements[-1])"
    if ($values.ContainsKey($key)) {
        $values[$key] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.Contains($cmd)) {
        $flags[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
        return
    }

    if ($elements.Count -eq 2 -and $positional.Contains($cmd)) {
        $positional[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
}
`)

	_, err := io.WriteString(w, b.String())
	return err
}
