package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// usageWidth is the width of the rules framing the usage guide.
const usageWidth = 80

type usageSection struct {
	title string
	lines []usageLine
}

// usageLine is either prose, a shell command, or sample output.
type usageLine struct {
	text   string
	cmd    bool
	sample bool
}

func prose(s string) usageLine  { return usageLine{text: s} }
func shell(s string) usageLine  { return usageLine{text: s, cmd: true} }
func sample(s string) usageLine { return usageLine{text: s, sample: true} }

var usageGuide = []usageSection{
	{
		title: "INSTALLATION",
		lines: []usageLine{
			prose("Install the binary with the Go toolchain:"),
			shell("go install github.com/Aman-CERP/seroost/cmd/seroost@latest"),
			prose(""),
			prose("Or build from a checkout:"),
			shell("git clone https://github.com/Aman-CERP/seroost.git"),
			shell("cd seroost && go build -o seroost ./cmd/seroost"),
		},
	},
	{
		title: "CREATING SAMPLE DOCUMENTS",
		lines: []usageLine{
			prose("Create a sample document directory for testing:"),
			shell("mkdir -p ~/documents/samples"),
			shell("cd ~/documents/samples"),
			shell(`echo "Rust is a systems programming language focused on safety." > rust.txt`),
			shell(`echo "Python is known for its simplicity and readability." > python.txt`),
		},
	},
	{
		title: "INDEXING DOCUMENTS",
		lines: []usageLine{
			prose("Index your documents directory:"),
			shell("seroost --index-path ~/documents/samples index"),
			prose(""),
			prose("Expected output:"),
			sample("Indexing directory: ~/documents/samples"),
			sample("Indexing: ~/documents/samples/python.txt"),
			sample("Indexing: ~/documents/samples/rust.txt"),
			sample("Saving index to: ~/.config/seroost/index.json"),
			sample("Successfully indexed 2 documents"),
			prose(""),
			prose("Keep the index fresh while you edit:"),
			shell("seroost index --watch"),
		},
	},
	{
		title: "SEARCHING DOCUMENTS",
		lines: []usageLine{
			prose("Search through indexed documents:"),
			shell(`seroost search "programming language"`),
			prose(""),
			prose("Expected output:"),
			sample("Search results for: programming language"),
			sample(strings.Repeat("═", ruleWidth)),
			sample("1. ~/documents/samples/rust.txt (Score: 0.11552)"),
			sample(strings.Repeat("═", ruleWidth)),
			prose(""),
			prose("Machine-readable results, with matching lines for source files:"),
			shell(`seroost search --format json "readability"`),
		},
	},
	{
		title: "SUBSEQUENT SEARCHES",
		lines: []usageLine{
			prose("The index path is saved, so later runs need no --index-path:"),
			shell(`seroost search "readability"`),
			shell("seroost status"),
		},
	},
	{
		title: "EDITOR AND AGENT INTEGRATION",
		lines: []usageLine{
			prose("Serve the index to MCP clients over stdio:"),
			shell("seroost serve --metrics-addr 127.0.0.1:9090"),
		},
	},
}

// RenderUsage writes the detailed usage guide.
func RenderUsage(w io.Writer, color bool) error {
	r := lipgloss.NewRenderer(w)
	plain := r.NewStyle()
	title, rule, section, prompt, expected := plain, plain, plain, plain, plain
	if color {
		title = r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(colorGreen))
		rule = r.NewStyle().Foreground(lipgloss.Color(colorCyan))
		section = r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow))
		prompt = r.NewStyle().Foreground(lipgloss.Color("8"))
		expected = r.NewStyle().Foreground(lipgloss.Color(colorBlue))
	}

	var sb strings.Builder
	line := rule.Render(strings.Repeat("═", usageWidth))

	sb.WriteString(line + "\n")
	sb.WriteString(title.Render("SEROOST DETAILED USAGE GUIDE") + "\n")
	sb.WriteString(line + "\n\n")

	for _, s := range usageGuide {
		sb.WriteString(section.Render(s.title) + "\n")
		for _, l := range s.lines {
			switch {
			case l.cmd:
				fmt.Fprintf(&sb, "  %s %s\n", prompt.Render("$"), l.text)
			case l.sample:
				fmt.Fprintf(&sb, "  %s\n", expected.Render(l.text))
			default:
				sb.WriteString(l.text + "\n")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(line + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
