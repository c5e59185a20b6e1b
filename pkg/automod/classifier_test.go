package automod

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func classifierAgainst(t *testing.T, handler http.HandlerFunc) *OpenAIClassifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewOpenAIClassifier("test-key", "gpt-3.5-turbo")
	c.endpoint = server.URL
	return c
}

func TestClassifierViolationVerdict(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"VIOLATION"}}]}`))
	})

	verdict, err := c.Classify("mensaje horrible")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if verdict != VerdictViolation {
		t.Errorf("verdict = %q, want %q", verdict, VerdictViolation)
	}
}

func TestClassifierCleanVerdict(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"CLEAN"}}]}`))
	})

	verdict, err := c.Classify("mensaje normal")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if verdict != VerdictClean {
		t.Errorf("verdict = %q, want %q", verdict, VerdictClean)
	}
}

func TestClassifierTrimsWhitespace(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" VIOLATION\n"}}]}`))
	})

	verdict, _ := c.Classify("x")
	if verdict != VerdictViolation {
		t.Errorf("verdict = %q, want violation after trimming", verdict)
	}
}

func TestClassifierServerError(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	verdict, err := c.Classify("x")
	if !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("error = %v, want ErrClassifierUnavailable", err)
	}
	if verdict != VerdictClean {
		t.Errorf("verdict on error = %q, want clean", verdict)
	}
}

func TestClassifierTimeout(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"choices":[]}`))
	})
	c.client.Timeout = 50 * time.Millisecond

	verdict, err := c.Classify("x")
	if !errors.Is(err, ErrClassifierTimeout) {
		t.Errorf("error = %v, want ErrClassifierTimeout", err)
	}
	if verdict != VerdictClean {
		t.Errorf("verdict on timeout = %q, want clean", verdict)
	}
}

func TestClassifierEmptyChoices(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	verdict, err := c.Classify("x")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if verdict != VerdictClean {
		t.Errorf("verdict = %q, want clean for empty choices", verdict)
	}
}
