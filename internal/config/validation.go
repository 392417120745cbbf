package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs every check and returns structured findings sorted with
// errors first.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateFields()...)
	results = append(results, c.validateDefaultTools()...)
	results = append(results, c.validateDownload()...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Level == "error" && results[j].Level != "error"
	})
	return results
}

// Err folds error-level findings into a single error, or nil.
func (c Config) Err() error {
	var errs []error
	for _, r := range c.Validate() {
		if r.Level == "error" {
			errs = append(errs, errors.New(r.Message))
		}
	}
	return errors.Join(errs...)
}

func (c Config) validateFields() []ValidationResult {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationResult{{Level: "error", Message: err.Error()}}
	}
	results := make([]ValidationResult, 0, len(verrs))
	for _, fe := range verrs {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("%s: failed %q check (value %v)", yamlPath(fe.Namespace()), fe.Tag(), fe.Value()),
		})
	}
	return results
}

func (c Config) validateDefaultTools() []ValidationResult {
	var results []ValidationResult
	seen := make(map[string]struct{}, len(c.DefaultTools))
	for _, tool := range c.DefaultTools {
		name := strings.ToLower(strings.TrimSpace(tool))
		if name == "python" || name == "pip" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("default_tools: %q is provided by the runtime and cannot be listed", tool),
			})
		}
		if _, dup := seen[name]; dup {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("default_tools: %q listed more than once", tool),
			})
		}
		seen[name] = struct{}{}
	}
	if len(c.DefaultTools) == 0 {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: "default_tools is empty; toolchains will only provide the runtime",
		})
	}
	return results
}

func (c Config) validateDownload() []ValidationResult {
	if c.Download.Timeout.Duration < 0 {
		return []ValidationResult{{
			Level:   "error",
			Message: "download.timeout must not be negative",
		}}
	}
	return nil
}

func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
