package fill

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// DateLayout is the accepted shape of date answers.
const DateLayout = "2006-01-02"

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithMaxRows caps the rows collected for one repeater. Zero means no cap.
func WithMaxRows(n int) Option {
	return func(c *Collector) {
		if n >= 0 {
			c.maxRows = n
		}
	}
}

// Collector prompts for every field of a schema and assembles a Record.
type Collector struct {
	driver  PromptDriver
	maxRows int
}

// New constructs a Collector. Without WithPromptDriver it prompts on the
// process terminal.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver()
	}
	return c
}

// Collect prompts for fields in order. Values already in initial become the
// prompt defaults, otherwise each field's declared default is offered.
// Optional fields left blank are omitted from the result.
func (c *Collector) Collect(ctx context.Context, fields []model.Field, initial model.Record) (model.Record, error) {
	if ctx == nil {
		return nil, errors.New("fill: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(model.Record, len(fields))
	if err := c.collectLevel(ctx, fields, initial, out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collector) collectLevel(ctx context.Context, fields []model.Field, initial, out model.Record, prefix string) error {
	for _, field := range fields {
		path := field.ID
		if prefix != "" {
			path = prefix + "." + field.ID
		}
		value, ok, err := c.promptField(ctx, field, initial.Get(field.ID), path)
		if err != nil {
			return err
		}
		if ok {
			out[field.ID] = value
		}
	}
	return nil
}

func (c *Collector) promptField(ctx context.Context, field model.Field, current model.Value, path string) (model.Value, bool, error) {
	switch field.Kind {
	case model.KindTextarea:
		return c.promptTextArea(ctx, field, current, path)
	case model.KindNumber:
		return c.promptNumber(ctx, field, current, path)
	case model.KindSelect:
		return c.promptSelect(ctx, field, current, path)
	case model.KindCheckbox:
		return c.promptCheckbox(ctx, field, current)
	case model.KindRepeater:
		return c.promptRepeater(ctx, field, current, path)
	case model.KindDate:
		return c.promptInput(ctx, field, current, path, validateDate)
	default:
		return c.promptInput(ctx, field, current, path, nil)
	}
}

func (c *Collector) promptInput(ctx context.Context, field model.Field, current model.Value, path string, check func(string) error) (model.Value, bool, error) {
	defaultVal := defaultText(field, current)
	for {
		response, err := c.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return model.Value{}, false, err
		}
		if strings.TrimSpace(response) == "" {
			if field.Required {
				c.invalid(ctx, path, "required")
				continue
			}
			return model.Value{}, false, nil
		}
		if check != nil {
			if err := check(strings.TrimSpace(response)); err != nil {
				c.invalid(ctx, path, err.Error())
				continue
			}
		}
		return model.String(response), true, nil
	}
}

func (c *Collector) promptTextArea(ctx context.Context, field model.Field, current model.Value, path string) (model.Value, bool, error) {
	defaultVal := defaultText(field, current)
	for {
		response, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return model.Value{}, false, err
		}
		if strings.TrimSpace(response) == "" {
			if field.Required {
				c.invalid(ctx, path, "required")
				continue
			}
			return model.Value{}, false, nil
		}
		return model.String(response), true, nil
	}
}

func (c *Collector) promptNumber(ctx context.Context, field model.Field, current model.Value, path string) (model.Value, bool, error) {
	defaultVal := defaultText(field, current)
	for {
		input, err := c.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return model.Value{}, false, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if field.Required {
				c.invalid(ctx, path, "required")
				continue
			}
			return model.Value{}, false, nil
		}
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			c.invalid(ctx, path, fmt.Sprintf("%q is not a number", input))
			continue
		}
		return model.Number(model.Finite(n)), true, nil
	}
}

func (c *Collector) promptSelect(ctx context.Context, field model.Field, current model.Value, path string) (model.Value, bool, error) {
	if len(field.Options) == 0 {
		return model.Value{}, false, fmt.Errorf("fill: select field %s has no options", path)
	}
	labels := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		labels = append(labels, opt.DisplayLabel())
	}
	defaultIdx := indexOf(field.OptionValues(), defaultText(field, current))

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(field),
		})
		if err != nil {
			return model.Value{}, false, err
		}
		if idx < 0 || idx >= len(field.Options) {
			c.invalid(ctx, path, "selection")
			continue
		}
		return model.String(field.Options[idx].Value), true, nil
	}
}

func (c *Collector) promptCheckbox(ctx context.Context, field model.Field, current model.Value) (model.Value, bool, error) {
	defaultVal := current.Truthy()
	if current.IsNull() {
		defaultVal = parseBool(field.Default)
	}
	resp, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultVal,
		Help:    displayHelp(field),
	})
	if err != nil {
		return model.Value{}, false, err
	}
	return model.Bool(resp), true, nil
}

func (c *Collector) promptRepeater(ctx context.Context, field model.Field, current model.Value, path string) (model.Value, bool, error) {
	label := displayLabel(field)
	existing, _ := current.Rows()

	if len(existing) == 0 && !field.Required {
		add, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s?", label),
			Default: false,
		})
		if err != nil {
			return model.Value{}, false, err
		}
		if !add {
			return model.List(), true, nil
		}
	}

	var rows []model.Record
	for {
		idx := len(rows)
		var seed model.Record
		if idx < len(existing) {
			seed = existing[idx]
		}
		if err := c.driver.Info(ctx, fmt.Sprintf("%s #%d", label, idx+1)); err != nil {
			return model.Value{}, false, err
		}
		row := make(model.Record, len(field.Children))
		if err := c.collectLevel(ctx, field.Children, seed, row, fmt.Sprintf("%s.%d", path, idx)); err != nil {
			return model.Value{}, false, err
		}
		rows = append(rows, row)

		if c.maxRows > 0 && len(rows) >= c.maxRows {
			break
		}
		more, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another?",
			Default: len(rows) < len(existing),
		})
		if err != nil {
			return model.Value{}, false, err
		}
		if !more {
			break
		}
	}
	return model.List(rows...), true, nil
}

func (c *Collector) invalid(ctx context.Context, path, reason string) {
	_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", path, reason))
}

func validateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%q is not a date (YYYY-MM-DD)", s)
	}
	return nil
}

func defaultText(field model.Field, current model.Value) string {
	if !current.IsNull() {
		return current.Text()
	}
	return field.Default
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}

func displayLabel(field model.Field) string {
	label := field.DisplayLabel()
	if field.Required {
		return label + " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	if field.Help != "" {
		return field.Help
	}
	return field.Placeholder
}
