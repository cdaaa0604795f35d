package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenerd-labs/revcrew/internal/classifier"
)

func TestRoute_FirstMatchWins(t *testing.T) {
	cases := []struct {
		name string
		c    classifier.Classification
		want []string
	}{
		{"documentation", classifier.Classification{IsDocumentation: true, Type: classifier.TypeMarkdown}, []string{Documentation, Style}},
		{"config", classifier.Classification{IsConfig: true, Type: classifier.TypeJSON}, []string{Security, Documentation, Style}},
		{"test", classifier.Classification{IsTest: true, Type: classifier.TypeGo}, []string{Quality, Testing, Documentation, Style}},
		{"go source", classifier.Classification{Type: classifier.TypeGo}, []string{Security, Quality, Performance, Testing, Documentation, Style}},
		{"sql", classifier.Classification{Type: classifier.TypeSQL}, []string{Security, Quality, Performance, Documentation, Style}},
		{"html", classifier.Classification{Type: classifier.TypeHTML}, []string{Quality, Documentation, Style}},
		{"shell", classifier.Classification{Type: classifier.TypeShell}, []string{Security, Quality, Documentation, Style}},
		{"json", classifier.Classification{Type: classifier.TypeJSON}, []string{Security, Documentation, Style}},
		{"unknown", classifier.Classification{Type: classifier.TypeUnknown}, []string{Security, Quality, Documentation, Style}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Route(tc.c))
		})
	}
}

func TestRoute_Pure(t *testing.T) {
	c := classifier.Classify("pkg/foo/handler.go")
	first := Route(c)
	second := Route(c)
	assert.Equal(t, first, second)

	// Mutating the returned slice must not affect subsequent calls,
	// since generalPurpose is shared backing storage.
	first[0] = "mutated"
	third := Route(c)
	assert.Equal(t, Security, third[0])
}
