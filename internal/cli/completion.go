package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// rectFileCompletion offers .rect files for the single positional input.
func rectFileCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"rect"}, cobra.ShellCompDirectiveFilterFileExt
}

// techCompletion offers the technologies installed under $ACT_HOME/conf.
func techCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, tech := range techconf.Available(techconf.Home()) {
		if strings.HasPrefix(tech, toComplete) {
			out = append(out, tech)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completionCommand creates the completion command for generating shell
// completions. Inputs complete to .rect files and -T to the technologies
// found under $ACT_HOME/conf.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rect2lef.

To load completions:

Bash:
  $ source <(rect2lef completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ rect2lef completion bash > /etc/bash_completion.d/rect2lef
  # macOS:
  $ rect2lef completion bash > $(brew --prefix)/etc/bash_completion.d/rect2lef

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ rect2lef completion zsh > "${fpath[1]}/_rect2lef"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ rect2lef completion fish | source

  # To load completions for each session, execute once:
  $ rect2lef completion fish > ~/.config/fish/completions/rect2lef.fish

PowerShell:
  PS> rect2lef completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> rect2lef completion powershell > rect2lef.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
