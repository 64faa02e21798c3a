package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// useEODHDServer points eodhd commands to a test server.
func useEODHDServer(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/eod/SPY.US", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "k3y" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Write([]byte(`[
			{"date": "2001-08-30", "close": 113.00},
			{"date": "2001-08-31", "close": 114.15},
			{"date": "2001-09-27", "close": 103.00},
			{"date": "2001-09-28", "close": 104.44}
		]`))
	})
	mux.HandleFunc("/api/search/spdr", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Code":"SPY","Exchange":"US","Name":"SPDR S&P 500","Type":"ETF","Country":"USA","Currency":"USD","ISIN":"US78462F1030","previousClose":247.42,"previousCloseDate":"2017-07-25"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	testBaseURL = srv.URL
	t.Cleanup(func() { testBaseURL = "" })
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv(EnvEODHDAPIKey, "k3y")
}

func TestEODHDMonthly(t *testing.T) {
	useEODHDServer(t)
	out := captureStdout(t)

	if got := execute(t, &eodhdMonthlyCmd{}, "-ticker", "SPY.US", "-format", "csv"); got != subcommands.ExitSuccess {
		t.Fatalf("eodhd monthly exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	want := "Date,Close\n2001-08-31,114.15\n2001-09-28,104.44\n"
	if got := out.String(); got != want {
		t.Errorf("eodhd monthly output = %q, want %q", got, want)
	}
}

func TestEODHDMonthly_Errors(t *testing.T) {
	useEODHDServer(t)
	captureStdout(t)

	tests := []struct {
		args []string
		want subcommands.ExitStatus
	}{
		{[]string{}, subcommands.ExitUsageError},
		{[]string{"-ticker", "SPY.US", "-from", "yesterday"}, subcommands.ExitUsageError},
		{[]string{"-ticker", "SPY.US", "-cache", "forever"}, subcommands.ExitUsageError},
		{[]string{"-ticker", "SPY.US", "-format", "pdf"}, subcommands.ExitUsageError},
		{[]string{"-ticker", "QQQ.US"}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		if got := execute(t, &eodhdMonthlyCmd{}, tt.args...); got != tt.want {
			t.Errorf("eodhd monthly %v exit status = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestEODHDSearch(t *testing.T) {
	useEODHDServer(t)
	out := captureStdout(t)

	if got := execute(t, &eodhdSearchCmd{}, "spdr"); got != subcommands.ExitSuccess {
		t.Fatalf("eodhd search exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	for _, want := range []string{"SPDR S&P 500 (SPY)", "247.42 on 2017-07-25", "stockdata eodhd monthly -ticker SPY.US"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("eodhd search output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("")
	if err != nil || !d.IsZero() {
		t.Errorf("parseOptionalDate(\"\") = %v, %v, want zero date", d, err)
	}
	d, err = parseOptionalDate("2001-8-31")
	if err != nil || d.String() != "2001-08-31" {
		t.Errorf("parseOptionalDate(\"2001-8-31\") = %v, %v, want 2001-08-31", d, err)
	}
}
