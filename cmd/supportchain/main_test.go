package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"supportchain/internal/config"
	"supportchain/internal/llm"
)

func TestApplyFlagOverrides(t *testing.T) {
	origKey, origModel, origTimeout := apiKey, model, timeout
	t.Cleanup(func() {
		apiKey, model, timeout = origKey, origModel, origTimeout
	})

	apiKey = "flag-key"
	model = "gemini-2.5-pro"
	timeout = 30 * time.Second

	c := config.DefaultConfig()
	applyFlagOverrides(c)

	if c.LLM.APIKey != "flag-key" {
		t.Errorf("expected APIKey=flag-key, got %s", c.LLM.APIKey)
	}
	if c.LLM.Model != "gemini-2.5-pro" {
		t.Errorf("expected Model=gemini-2.5-pro, got %s", c.LLM.Model)
	}
	if c.LLM.Timeout != "30s" {
		t.Errorf("expected Timeout=30s, got %s", c.LLM.Timeout)
	}
}

func TestApplyFlagOverrides_UnsetFlagsKeepConfig(t *testing.T) {
	origKey, origModel, origTimeout := apiKey, model, timeout
	t.Cleanup(func() {
		apiKey, model, timeout = origKey, origModel, origTimeout
	})

	apiKey, model, timeout = "", "", 0

	c := config.DefaultConfig()
	c.LLM.APIKey = "file-key"
	applyFlagOverrides(c)

	if c.LLM.APIKey != "file-key" {
		t.Errorf("unset flag must not clobber config, got %s", c.LLM.APIKey)
	}
	if c.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("unset flag must not clobber model, got %s", c.LLM.Model)
	}
}

func TestShowStages(t *testing.T) {
	output := captureOutput(t, func() {
		if err := showStages(&cobra.Command{}, []string{}); err != nil {
			t.Fatalf("showStages returned error: %v", err)
		}
	})

	if !strings.Contains(output, "1. Intent Interpretation") {
		t.Errorf("expected first stage in output, got: %s", output)
	}
	if !strings.Contains(output, "5. Final Response") {
		t.Errorf("expected last stage in output, got: %s", output)
	}
	if !strings.Contains(output, "writes: stage_5_output") {
		t.Errorf("expected written key in output, got: %s", output)
	}
	if !strings.Contains(output, "Account Access") {
		t.Errorf("expected category list in output, got: %s", output)
	}
}

func TestShowStatus(t *testing.T) {
	origCfg := cfg
	t.Cleanup(func() { cfg = origCfg })

	cfg = config.DefaultConfig()
	output := captureOutput(t, func() {
		if err := showStatus(&cobra.Command{}, []string{}); err != nil {
			t.Fatalf("showStatus returned error: %v", err)
		}
	})
	if !strings.Contains(output, "✗") || !strings.Contains(output, llm.APIKeyEnvVar) {
		t.Errorf("expected unconfigured marker naming %s, got: %s", llm.APIKeyEnvVar, output)
	}

	cfg.LLM.APIKey = "gm-test"
	output = captureOutput(t, func() {
		if err := showStatus(&cobra.Command{}, []string{}); err != nil {
			t.Fatalf("showStatus returned error: %v", err)
		}
	})
	if !strings.Contains(output, "✓") {
		t.Errorf("expected configured marker, got: %s", output)
	}
}

func TestBuildClient(t *testing.T) {
	logger = zap.NewNop()

	c := config.DefaultConfig()
	c.LLM.APIKey = "gm-test"
	c.LLM.Model = "gemini-2.5-pro"

	client := buildClient(c)

	tracing, ok := client.(*llm.TracingClient)
	if !ok {
		t.Fatalf("expected *llm.TracingClient, got %T", client)
	}
	gemini, ok := tracing.GetUnderlying().(*llm.GeminiClient)
	if !ok {
		t.Fatalf("expected *llm.GeminiClient underneath, got %T", tracing.GetUnderlying())
	}
	if gemini.GetModel() != "gemini-2.5-pro" {
		t.Errorf("expected configured model, got %s", gemini.GetModel())
	}
	if !gemini.Configured() {
		t.Error("expected configured client")
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
