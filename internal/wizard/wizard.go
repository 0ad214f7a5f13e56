// Package wizard implements the guided creation of new JSON files.
package wizard

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/generator"
	"github.com/mcncl/jsonpeek/internal/models"
	"github.com/mcncl/jsonpeek/internal/prompt"
)

const mainMenu = `Quick JSON
----------------------------
[1] New JSON file on the Desktop, filled in step by step
[2] New JSON file in another folder, filled in step by step
[3] Empty JSON file on the Desktop
[4] Empty JSON file in another folder
[5] Quit
`

const valueMenu = `Choose the kind of value to add
-------------------------------
[1] String
[2] Boolean
[3] Integer
[4] Save and exit
`

// Wizard asks for a destination and values, then writes a JSON file.
type Wizard struct {
	prompt *prompt.Prompter
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Wizard reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, cfg *config.Config, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Wizard{
		prompt: prompt.New(in, out),
		cfg:    cfg,
		logger: logger,
	}
}

// Run shows the main menu and performs the chosen action. Running out of
// input ends the wizard without writing anything.
func (w *Wizard) Run(ctx context.Context) error {
	err := w.run(ctx)
	if stderrors.Is(err, io.EOF) {
		w.prompt.Println()
		return nil
	}
	return err
}

func (w *Wizard) run(ctx context.Context) error {
	w.prompt.Printf("%s", mainMenu)

	for {
		option, err := w.prompt.Ask(ctx, "Choose an option (1-5): ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(option) {
		case "1":
			path, err := w.askPath(ctx, w.cfg.WizardDir())
			if err != nil {
				return err
			}
			return w.fill(ctx, path)
		case "2":
			dir, err := w.askFolder(ctx)
			if err != nil {
				return err
			}
			path, err := w.askPath(ctx, dir)
			if err != nil {
				return err
			}
			return w.fill(ctx, path)
		case "3":
			path, err := w.askPath(ctx, w.cfg.WizardDir())
			if err != nil {
				return err
			}
			return w.save(path, models.Document{}, "created")
		case "4":
			dir, err := w.askFolder(ctx)
			if err != nil {
				return err
			}
			path, err := w.askPath(ctx, dir)
			if err != nil {
				return err
			}
			return w.save(path, models.Document{}, "created")
		case "5":
			w.prompt.Println("Exited.")
			return nil
		default:
			w.prompt.Println("Invalid option, please try again.")
		}
	}
}

func (w *Wizard) askFolder(ctx context.Context) (string, error) {
	for {
		answer, err := w.prompt.Ask(ctx, "Enter the folder to save to: ")
		if err != nil {
			return "", err
		}
		if dir := prompt.CleanPath(answer); dir != "" {
			return dir, nil
		}
		w.prompt.Println("The folder must not be empty.")
	}
}

// askPath asks for a file name without the .json suffix and joins it to dir.
func (w *Wizard) askPath(ctx context.Context, dir string) (string, error) {
	for {
		answer, err := w.prompt.Ask(ctx, "Enter the name of the new JSON file (without .json): ")
		if err != nil {
			return "", err
		}
		name := strings.TrimSuffix(strings.TrimSpace(answer), ".json")
		switch {
		case name == "":
			w.prompt.Println("The file name must not be empty.")
		case strings.ContainsAny(name, `/\`):
			w.prompt.Println("The file name must not contain path separators.")
		default:
			return filepath.Join(dir, name+".json"), nil
		}
	}
}

// fill runs the value menu until the user saves.
func (w *Wizard) fill(ctx context.Context, path string) error {
	var doc models.Document

	for {
		w.prompt.Printf("%s", valueMenu)
		option, err := w.prompt.Ask(ctx, "Enter an option (1-4): ")
		if err != nil {
			return err
		}

		var value models.Value
		switch strings.TrimSpace(option) {
		case "1":
			key, err := w.askKey(ctx)
			if err != nil {
				return err
			}
			text, err := w.prompt.Ask(ctx, "Enter the text: ")
			if err != nil {
				return err
			}
			value = models.StringValue(text)
			doc.Set(key, value)
		case "2":
			key, err := w.askKey(ctx)
			if err != nil {
				return err
			}
			if value, err = w.askBool(ctx); err != nil {
				return err
			}
			doc.Set(key, value)
		case "3":
			key, err := w.askKey(ctx)
			if err != nil {
				return err
			}
			if value, err = w.askInt(ctx); err != nil {
				return err
			}
			doc.Set(key, value)
		case "4":
			return w.save(path, doc, "saved")
		default:
			w.prompt.Println("Invalid option, please try again.")
			continue
		}

		w.logger.Debug("wizard value added", "kind", value.Kind(), "entries", doc.Len())
		w.prompt.Println("Value added.")
	}
}

func (w *Wizard) askKey(ctx context.Context) (string, error) {
	for {
		key, err := w.prompt.Ask(ctx, "Enter the value name: ")
		if err != nil {
			return "", err
		}
		if key = w.cfg.NormalizeKey(strings.TrimSpace(key)); key != "" {
			return key, nil
		}
		w.prompt.Println("The value name must not be empty.")
	}
}

func (w *Wizard) askBool(ctx context.Context) (models.Value, error) {
	for {
		answer, err := w.prompt.Ask(ctx, "Is this value on (true/false): ")
		if err != nil {
			return models.Value{}, err
		}
		answer = strings.TrimSpace(answer)
		switch {
		case strings.EqualFold(answer, "true"):
			return models.BoolValue(true), nil
		case strings.EqualFold(answer, "false"):
			return models.BoolValue(false), nil
		}
		w.prompt.Printf("%q is not true or false, please try again.\n", answer)
	}
}

func (w *Wizard) askInt(ctx context.Context) (models.Value, error) {
	for {
		answer, err := w.prompt.Ask(ctx, "Enter the number: ")
		if err != nil {
			return models.Value{}, err
		}
		answer = strings.TrimSpace(answer)
		n, err := strconv.ParseInt(answer, 10, 64)
		if err == nil {
			return models.IntegerValue(n), nil
		}
		w.prompt.Printf("%q is not a whole number, please try again.\n", answer)
	}
}

func (w *Wizard) save(path string, doc models.Document, verb string) error {
	content, err := generator.GenerateJSON(doc)
	if err != nil {
		return errors.NewOutputError("failed to generate JSON", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write '%s'", path), err)
	}
	w.logger.Debug("wizard file written", "path", path, "entries", doc.Len())
	w.prompt.Printf("JSON file %s at: %s\n", verb, path)
	return nil
}
