package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _beaconfix_completions beaconfix", "--round-timeout", "--input|--output|-o|--log-file|--config)", `compgen -W "debug info warn error"`}},
		{"zsh", []string{"#compdef beaconfix", "'(-q --quiet)'{-q,--quiet}'[Quiet mode for scripts]'", "'--input[Resolve a request file]:file:_files'"}},
		{"fish", []string{"complete -c beaconfix -f", "# Single-shot", "complete -c beaconfix -l input -d 'Resolve a request file' -rF", "-xa 'bash zsh fish'"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, "beaconfix"); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "powershell", "beaconfix"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistryCoversEveryFlag(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" {
			t.Errorf("flag %+v has no long name", f)
		}
		if seen[f.Long] {
			t.Errorf("duplicate flag %q", f.Long)
		}
		seen[f.Long] = true
	}
}
