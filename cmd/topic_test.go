package cmd

import (
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestTopic(t *testing.T) {
	out := captureStdout(t)
	if got := execute(t, &topicCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("topic exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if !strings.Contains(out.String(), "* aggregation:") {
		t.Errorf("topic without argument should list topics, got:\n%s", out)
	}

	out.Reset()
	if got := execute(t, &topicCmd{}, "aggregation"); got != subcommands.ExitSuccess {
		t.Fatalf("topic aggregation exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if !strings.HasPrefix(out.String(), "# Aggregation") {
		t.Errorf("topic aggregation = %q, want the aggregation topic", out.String()[:min(out.Len(), 40)])
	}

	if got := execute(t, &topicCmd{}, "nope"); got != subcommands.ExitFailure {
		t.Errorf("topic nope exit status = %v, want %v", got, subcommands.ExitFailure)
	}
}
