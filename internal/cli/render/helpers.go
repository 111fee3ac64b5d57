package render

import (
	"github.com/fatih/color"
	"github.com/trebuchet-org/smithy/internal/domain"
)

// FormatError formats an error message with the error icon.
// The message is printed verbatim so node and compiler errors stay intact.
func FormatError(err error) string {
	out := color.New(color.FgRed).Sprintf("❌ %s", err.Error())
	if hint := errorHint(err); hint != "" {
		out += "\n" + color.New(color.Faint).Sprint("   "+hint)
	}
	return out
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

func errorHint(err error) string {
	switch domain.FailureKindOf(err) {
	case domain.FailureArtifactNotFound:
		return "Run 'smithy artifacts' to see what can be deployed."
	case domain.FailureTimeout:
		return "Raise --timeout or check that the node is mining blocks."
	default:
		return ""
	}
}
