package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/bizfindr/bizfindr/internal/core/config"
)

// ConfigCheck runs deep config validation and reports each failing field.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	label := c.configPath
	if label == "" {
		label = "config"
	}

	err := c.cfg.ValidateDeep(c.configPath)
	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		result.Items = append(result.Items, pass(label, "valid"))
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.Items = append(result.Items, fail(fe.Field, fe.Err.Error()))
		}
	default:
		result.Items = append(result.Items, fail(label, err.Error()))
	}

	for _, w := range c.cfg.Warnings() {
		detail := w.Message
		if w.Item != "" {
			detail = w.Item + ": " + detail
		}
		result.Items = append(result.Items, warn(w.Category, detail))
	}

	return result
}
