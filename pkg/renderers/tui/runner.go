package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notedhq/go-formkit/pkg/form"
	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/widgets"
)

const noSelection = "(none)"
const customEntry = "Other..."

// Runner walks a form session field by field, submits it, and re-prompts the
// fields that come back with validation errors.
type Runner struct {
	driver      PromptDriver
	projects    widgets.ProjectSource
	maxAttempts int
}

// New builds a runner. Without options it prompts through a real terminal.
func New(options ...Option) *Runner {
	r := &Runner{
		driver:      NewSurveyDriver(),
		maxAttempts: 3,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run prompts for every field, submits, and loops over invalid fields until
// the submit succeeds or the attempt budget runs out. The saved row is
// returned on success.
func (r *Runner) Run(ctx context.Context, session *form.Session) (persist.Row, error) {
	f := session.Form()
	if f.Title != "" {
		if err := r.driver.Info(ctx, f.Title); err != nil {
			return nil, err
		}
	}
	if f.Description != "" {
		if err := r.driver.Info(ctx, f.Description); err != nil {
			return nil, err
		}
	}

	for _, field := range f.Fields {
		if field.Disabled {
			continue
		}
		if err := r.askField(ctx, session, field); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		saved, err := session.Submit(ctx)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, form.ErrInvalid) {
			return nil, err
		}

		errs := session.Errors()
		for _, field := range f.Fields {
			msg, ok := errs[field.Key]
			if !ok {
				continue
			}
			if err := r.driver.Info(ctx, msg); err != nil {
				return nil, err
			}
			if err := r.askField(ctx, session, field); err != nil {
				return nil, err
			}
		}
	}
	return nil, ErrTooManyAttempts
}

func (r *Runner) askField(ctx context.Context, session *form.Session, cfg schema.FieldConfig) error {
	current, _ := session.Value(cfg.Key)

	var setErr error
	wctx := widgets.Context{
		Value: current,
		OnChange: func(value any) {
			setErr = session.Set(cfg.Key, value)
		},
	}

	var err error
	switch cfg.Type {
	case schema.TypeText, schema.TypeEmail, schema.TypeURL:
		err = r.askText(ctx, cfg, wctx)
	case schema.TypeTextarea:
		err = r.askTextarea(ctx, cfg, wctx)
	case schema.TypeTags:
		err = r.askTags(ctx, cfg, wctx)
	case schema.TypeLinks:
		err = r.askLinks(ctx, cfg, wctx)
	case schema.TypeImages:
		err = r.askImages(ctx, cfg, wctx)
	case schema.TypeProjectSelect:
		err = r.askProject(ctx, cfg, wctx)
	case schema.TypeSelect:
		err = r.askSelect(ctx, cfg, wctx)
	case schema.TypeNumber:
		err = r.askNumber(ctx, cfg, wctx)
	case schema.TypeCheckbox:
		err = r.askCheckbox(ctx, cfg, wctx)
	case schema.TypeDate:
		err = r.askDate(ctx, cfg, wctx)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return setErr
}

func (r *Runner) askText(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewText(cfg, wctx)
	answer, err := r.driver.Input(ctx, InputConfig{
		Message:     cfg.DisplayLabel(),
		Default:     widget.Value(),
		Help:        cfg.Description,
		Placeholder: cfg.Placeholder,
	})
	if err != nil {
		return err
	}
	widget.SetValue(answer)
	return nil
}

func (r *Runner) askTextarea(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewText(cfg, wctx)
	answer, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: cfg.DisplayLabel(),
		Default: widget.Value(),
		Help:    cfg.Description,
	})
	if err != nil {
		return err
	}
	widget.SetValue(answer)
	return nil
}

// askTags multi-selects from the suggestion list when the field is bound to
// it, and falls back to comma-separated free input otherwise. Either way the
// entries pass through the tags widget, so caps and duplicates behave exactly
// as they do in other frontends.
func (r *Runner) askTags(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewTags(cfg, wctx)

	if len(cfg.Suggestions) > 0 && !cfg.AllowCustomTags {
		defaults := indicesOf(cfg.Suggestions, widget.Tags())
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  cfg.DisplayLabel(),
			Options:  cfg.Suggestions,
			Defaults: defaults,
			Help:     cfg.Description,
		})
		if err != nil {
			return err
		}
		for _, tag := range widget.Tags() {
			widget.Remove(tag)
		}
		for _, idx := range picked {
			widget.Choose(cfg.Suggestions[idx])
		}
		return nil
	}

	answer, err := r.driver.Input(ctx, InputConfig{
		Message: fmt.Sprintf("%s (comma separated)", cfg.DisplayLabel()),
		Default: strings.Join(widget.Tags(), ", "),
		Help:    cfg.Description,
	})
	if err != nil {
		return err
	}
	for _, tag := range widget.Tags() {
		widget.Remove(tag)
	}
	for _, entry := range strings.Split(answer, ",") {
		widget.SetBuffer(entry)
		widget.Enter()
	}
	return nil
}

func (r *Runner) askLinks(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewLinks(cfg, wctx)
	for widget.CanAdd() {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s URL (blank to finish)", cfg.DisplayLabel()),
			Help:    cfg.Description,
		})
		if err != nil {
			return err
		}
		widget.SetStaged(answer)
		if !widget.Add() {
			return nil
		}
	}
	return nil
}

func (r *Runner) askImages(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewImages(cfg, wctx)
	for widget.CanAdd() {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s URL (blank to finish)", cfg.DisplayLabel()),
			Help:    cfg.Description,
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			return nil
		}
		if !widget.Add(schema.Image{URL: strings.TrimSpace(answer)}) {
			return nil
		}
	}
	return nil
}

func (r *Runner) askProject(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewProjectSelect(cfg, wctx, r.projects)
	if err := widget.Load(ctx); err != nil {
		return err
	}

	options := widget.Options()
	if len(options) == 0 {
		if !cfg.AllowCustom {
			return nil
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: cfg.DisplayLabel(),
			Default: widget.Selected(),
			Help:    cfg.Description,
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != "" {
			widget.SelectCustom(answer)
		}
		return nil
	}

	choices := append([]string{noSelection}, options...)
	if cfg.AllowCustom {
		choices = append(choices, customEntry)
	}
	defaultIdx := 0
	if idx := indexOf(choices, widget.Selected()); idx >= 0 {
		defaultIdx = idx
	}

	picked, err := r.driver.Select(ctx, SelectConfig{
		Message:      cfg.DisplayLabel(),
		Options:      choices,
		DefaultIndex: defaultIdx,
		Help:         cfg.Description,
	})
	if err != nil {
		return err
	}
	switch {
	case picked <= 0:
		widget.Select("")
	case choices[picked] == customEntry:
		answer, err := r.driver.Input(ctx, InputConfig{Message: cfg.DisplayLabel()})
		if err != nil {
			return err
		}
		widget.SelectCustom(answer)
	default:
		widget.Select(choices[picked])
	}
	return nil
}

func (r *Runner) askSelect(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewSelect(cfg, wctx)
	labels := make([]string, 0, len(cfg.Options))
	for _, option := range cfg.Options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		labels = append(labels, label)
	}

	if cfg.Multiple {
		defaults := make([]int, 0, len(widget.Values()))
		for i, option := range cfg.Options {
			for _, value := range widget.Values() {
				if option.Value == value {
					defaults = append(defaults, i)
				}
			}
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  cfg.DisplayLabel(),
			Options:  labels,
			Defaults: defaults,
			Help:     cfg.Description,
		})
		if err != nil {
			return err
		}
		for _, value := range widget.Values() {
			widget.Toggle(value)
		}
		for _, idx := range picked {
			widget.Toggle(cfg.Options[idx].Value)
		}
		return nil
	}

	choices := append([]string{noSelection}, labels...)
	picked, err := r.driver.Select(ctx, SelectConfig{
		Message: cfg.DisplayLabel(),
		Options: choices,
		Help:    cfg.Description,
	})
	if err != nil {
		return err
	}
	if picked <= 0 {
		widget.Select("")
		return nil
	}
	widget.Select(cfg.Options[picked-1].Value)
	return nil
}

func (r *Runner) askNumber(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewNumber(cfg, wctx)
	current := ""
	if v := widget.Value(); v != nil {
		current = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", *v), "0"), ".")
	}

	answer, err := r.driver.Input(ctx, InputConfig{
		Message: cfg.DisplayLabel(),
		Default: current,
		Help:    cfg.Description,
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			probe := widgets.NewNumber(cfg, widgets.Context{})
			if !probe.SetString(s) {
				return fmt.Errorf("%s must be a number", cfg.DisplayLabel())
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	widget.SetString(answer)
	return nil
}

func (r *Runner) askCheckbox(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewCheckbox(cfg, wctx)
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: cfg.DisplayLabel(),
		Default: widget.Checked(),
		Help:    cfg.Description,
	})
	if err != nil {
		return err
	}
	widget.Set(answer)
	return nil
}

func (r *Runner) askDate(ctx context.Context, cfg schema.FieldConfig, wctx widgets.Context) error {
	widget := widgets.NewDate(cfg, wctx)
	answer, err := r.driver.Input(ctx, InputConfig{
		Message:     fmt.Sprintf("%s (YYYY-MM-DD)", cfg.DisplayLabel()),
		Default:     widget.Value(),
		Help:        cfg.Description,
		Placeholder: cfg.Placeholder,
	})
	if err != nil {
		return err
	}
	widget.Set(answer)
	return nil
}
