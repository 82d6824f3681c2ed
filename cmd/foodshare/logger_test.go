package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelRouterSplitsByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(newLevelRouter(&info, &errs, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("listing created", "listing", "l1")
	logger.Warn("publishing failed")
	logger.Error("database gone")

	if strings.Contains(info.String(), "hidden") {
		t.Error("debug record should be dropped")
	}
	if !strings.Contains(info.String(), "listing created") || !strings.Contains(info.String(), "publishing failed") {
		t.Errorf("info writer missing records: %q", info.String())
	}
	if strings.Contains(info.String(), "database gone") {
		t.Error("error record leaked to info writer")
	}
	if !strings.Contains(errs.String(), "database gone") {
		t.Errorf("error writer missing record: %q", errs.String())
	}
}

func TestLevelRouterWithAttrs(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(newLevelRouter(&info, &errs, slog.LevelInfo)).With("component", "api")

	logger.Info("ok")
	logger.Error("fail")

	if !strings.Contains(info.String(), "component=api") || !strings.Contains(errs.String(), "component=api") {
		t.Errorf("attrs not carried to both writers: %q / %q", info.String(), errs.String())
	}
}
