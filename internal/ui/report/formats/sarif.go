// # internal/ui/report/formats/sarif.go
package formats

import (
	"encoding/json"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/shared/version"
	"path/filepath"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDUnparsable       = "FXC001"
	ruleIDMissingReturn    = "FXC002"
	ruleIDMissingArgument  = "FXC003"
	ruleIDIncorrectArgType = "FXC004"
	ruleIDUnknownFixture   = "FXC005"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

type ruleDef struct {
	id          string
	name        string
	description string
	level       string
}

var rulesByKind = map[checker.Kind]ruleDef{
	checker.KindUnparsableFile: {
		id: ruleIDUnparsable, name: "UnparsableFile", level: "error",
		description: "The file could not be parsed as Python.",
	},
	checker.KindFixtureMissingReturnType: {
		id: ruleIDMissingReturn, name: "FixtureMissingReturnType", level: "error",
		description: "A pytest fixture has no resolvable return type annotation.",
	},
	checker.KindMissingArgumentType: {
		id: ruleIDMissingArgument, name: "MissingArgumentType", level: "warning",
		description: "A parameter that receives a fixture has no resolvable annotation.",
	},
	checker.KindIncorrectArgumentType: {
		id: ruleIDIncorrectArgType, name: "IncorrectArgumentType", level: "error",
		description: "A parameter annotation differs from the fixture's return type.",
	},
	checker.KindFixtureDoesNotExist: {
		id: ruleIDUnknownFixture, name: "FixtureDoesNotExist", level: "warning",
		description: "An annotated parameter names no fixture defined in the module.",
	},
}

// GenerateSARIF builds a SARIF v2.1.0 document from diagnostics.
// File URIs are made relative to projectRoot.
func GenerateSARIF(projectRoot string, diags []checker.Diagnostic) ([]byte, error) {
	rules := buildSARIFRules(diags)
	results := make([]sarifResult, 0, len(diags))

	for _, d := range diags {
		rule := rulesByKind[d.Kind]
		result := sarifResult{
			RuleID:  rule.id,
			Level:   rule.level,
			Message: sarifMessage{Text: messageText(d)},
		}
		if d.File != "" {
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI:       relativeURI(projectRoot, d.File),
						URIBaseID: "%SRCROOT%",
					},
				},
			}
			if d.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{StartLine: d.Line}
			}
			result.Locations = []sarifLocation{loc}
		}
		results = append(results, result)
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "fixturecheck",
						Version: version.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

func messageText(d checker.Diagnostic) string {
	if d.FunctionName != "" {
		return d.FunctionName + ": " + d.Message()
	}
	return d.Message()
}

// buildSARIFRules returns only the rules that are relevant for the given findings.
func buildSARIFRules(diags []checker.Diagnostic) []sarifRule {
	present := make(map[checker.Kind]bool, len(diags))
	for _, d := range diags {
		present[d.Kind] = true
	}

	rules := make([]sarifRule, 0, len(present))
	for _, kind := range checker.Kinds {
		if !present[kind] {
			continue
		}
		rule := rulesByKind[kind]
		rules = append(rules, sarifRule{
			ID:               rule.id,
			Name:             rule.name,
			ShortDescription: sarifMessage{Text: rule.description},
			DefaultConfig:    sarifRuleDefaultConfig{Level: rule.level},
		})
	}
	return rules
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	return filepath.ToSlash(filePath)
}
