// Command decide evaluates a single loan application against a policy
// document and prints the decision as JSON.
//
//	decide -policy loan_policy.pdf -application app.json [-o result.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"loan-backend/internal/application"
	"loan-backend/internal/config"
	"loan-backend/internal/engine"
	"loan-backend/internal/llm"
	"loan-backend/internal/llm/openai"
	"loan-backend/internal/telemetry"
)

func main() {
	policyPath := flag.String("policy", "loan_policy.pdf", "path to the policy document (pdf, docx or plain text)")
	applicationPath := flag.String("application", "", "path to the applicant record JSON file (required)")
	outPath := flag.String("o", "", "optional file to write the decision JSON to")
	flag.Parse()

	if *applicationPath == "" {
		fmt.Fprintln(os.Stderr, "usage: decide -policy <policy document> -application <application json> [-o <output file>]")
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	raw, err := readApplication(*applicationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read application: %v\n", err)
		os.Exit(1)
	}
	printSummary(raw)

	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "llm client: %v\n", err)
		os.Exit(1)
	}
	var llmClient llm.Client = client
	if cfg.LLMMaxAttempts > 1 {
		llmClient = llm.WithRetry(llmClient, cfg.LLMMaxAttempts, 0)
	}

	logger := telemetry.NewLogger(cfg.LogLevel, "console")
	eng := engine.New(llmClient, engine.WithLogger(logger))

	result := eng.Decide(context.Background(), *policyPath, raw)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode decision: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *outPath != "" {
		if err := os.WriteFile(*outPath, append(out, '\n'), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "decision written to %s\n", *outPath)
	}
}

func readApplication(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// printSummary mirrors the application echo of the interactive runner. It is
// best-effort: a record the validator will reject still gets summarized as
// far as its fields parse.
func printSummary(raw map[string]any) {
	rec, err := application.Parse(raw)
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Applicant %s: requesting $%.2f, income $%.2f/yr, debt $%.2f/mo (DTI %.1f%%), credit score %d, employed %d months\n",
		rec.ApplicantID, rec.RequestedAmount, rec.AnnualIncome, rec.MonthlyDebt,
		rec.DebtToIncome(), rec.CreditScore, rec.EmploymentMonths)
}
