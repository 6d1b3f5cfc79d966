// Package prompt composes the instruction payload sent to the
// text-generation service. Building is pure: identical inputs always yield
// byte-identical messages, which keeps tests simple and makes the prompt
// hash a usable cache key.
package prompt

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"loan-backend/internal/application"
	"loan-backend/internal/llm"
)

var (
	//go:embed templates/system.txt
	systemTemplate string
	//go:embed templates/user.txt
	userTemplate string
)

// Build renders the two message segments: a system instruction embedding the
// policy text, the output format instructions and the fixed decision
// procedure, and a user segment embedding the serialized application plus
// its precomputed debt-to-income ratio.
func Build(policyText string, rec application.Record, formatInstructions string) []llm.Message {
	system := strings.NewReplacer(
		"{{POLICY_TEXT}}", policyText,
		"{{FORMAT_INSTRUCTIONS}}", formatInstructions,
	).Replace(systemTemplate)

	user := strings.NewReplacer(
		"{{APPLICATION_DATA}}", serializeRecord(rec),
		"{{DTI}}", fmt.Sprintf("%.1f", rec.DebtToIncome()),
	).Replace(userTemplate)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

// Hash returns the hex-encoded sha256 of the rendered prompt, used as the
// decision cache key.
func Hash(messages []llm.Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// serializeRecord pretty-prints the record. Struct field order is fixed, so
// the output is deterministic.
func serializeRecord(rec application.Record) string {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		// Record contains only plain scalars; MarshalIndent cannot fail.
		return ""
	}
	return string(data)
}
