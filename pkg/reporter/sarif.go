package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "formulint"
	toolInformationURI = "https://github.com/yaklabco/formulint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Artifacts   []SARIFArtifact   `json:"artifacts,omitempty"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a diagnostic code.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFArtifact describes a checked file.
type SARIFArtifact struct {
	Location SARIFArtifactLocation `json:"location"`
	Length   int64                 `json:"length,omitempty"`
	Hashes   map[string]string     `json:"hashes,omitempty"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation describes a physical file location.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation identifies the file.
type SARIFArtifactLocation struct {
	URI   string `json:"uri"`
	Index *int   `json:"index,omitempty"`
}

// SARIFRegion describes a region within a file.
type SARIFRegion struct {
	StartLine   int           `json:"startLine"`
	StartColumn int           `json:"startColumn"`
	Snippet     *SARIFMessage `json:"snippet,omitempty"`
}

// SARIFInvocation records unreadable files as tool execution notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a single tool execution notification.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// sarifRules lists every diagnostic code formulint can emit.
var sarifRules = []SARIFRule{
	{
		ID:               check.CodeSyntax,
		Name:             "SyntaxError",
		ShortDescription: SARIFMultiformatText{Text: "Formula could not be tokenized or parsed"},
		DefaultConfig:    &SARIFRuleConfig{Level: "error"},
	},
	{
		ID:               check.CodeMaxLength,
		Name:             "MaxLength",
		ShortDescription: SARIFMultiformatText{Text: "Formula exceeds the configured maximum length"},
		DefaultConfig:    &SARIFRuleConfig{Level: "warning"},
	},
}

// SARIFReporter formats results as SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, count := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return count, nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) (*SARIFOutput, int) {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        r.opts.ToolVersion,
				InformationURI: toolInformationURI,
				Rules:          sarifRules,
			},
		},
		Results: make([]SARIFResult, 0),
	}

	invocation := SARIFInvocation{ExecutionSuccessful: true}
	count := 0

	if result != nil {
		for _, file := range result.Files {
			index := len(run.Artifacts)
			artifact := SARIFArtifact{Location: SARIFArtifactLocation{URI: file.DisplayPath}}
			if file.Info != nil {
				artifact.Length = file.Info.Size
				if file.Info.SHA256 != "" {
					artifact.Hashes = map[string]string{"sha-256": file.Info.SHA256}
				}
			}
			run.Artifacts = append(run.Artifacts, artifact)

			if file.Error != nil {
				invocation.ExecutionSuccessful = false
				invocation.Notifications = append(invocation.Notifications, SARIFNotification{
					Level:   "error",
					Message: SARIFMessage{Text: file.Error.Error()},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: file.DisplayPath, Index: &index},
						},
					}},
				})
				continue
			}

			for _, diag := range file.Diagnostics() {
				run.Results = append(run.Results, sarifResult(&diag, file.DisplayPath, index))
				count++
			}
		}
	}

	run.Invocations = []SARIFInvocation{invocation}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}, count
}

func sarifResult(diag *check.Diagnostic, uri string, artifactIndex int) SARIFResult {
	region := SARIFRegion{
		StartLine:   max(diag.Line, 1),
		StartColumn: max(diag.Column, 1),
	}
	if diag.Formula != "" {
		region.Snippet = &SARIFMessage{Text: diag.Formula}
	}

	return SARIFResult{
		RuleID:    diag.Code,
		RuleIndex: ruleIndex(diag.Code),
		Level:     severityToSARIFLevel(diag.Severity),
		Message:   SARIFMessage{Text: diag.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri, Index: &artifactIndex},
				Region:           region,
			},
		}},
	}
}

func ruleIndex(code string) int {
	for i, rule := range sarifRules {
		if rule.ID == code {
			return i
		}
	}
	return -1
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(s config.Severity) string {
	switch s {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
