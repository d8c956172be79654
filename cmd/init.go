package cmd

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*.tpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tpl"))

// scaffold maps a template to the path it is written to inside the project.
var scaffold = []struct {
	template string
	path     string
}{
	{"hello.pl0.tpl", filepath.Join("src", "hello.pl0")},
	{"gitignore.tpl", ".gitignore"},
}

type projectData struct {
	Name   string
	OutDir string
}

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new PL/0 project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return scaffoldProject(cmd.OutOrStdout(), dir)
	},
}

func scaffoldProject(out io.Writer, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	data := projectData{Name: filepath.Base(abs), OutDir: outDir}
	fmt.Fprintf(out, "↪ scaffolding new project %q ...\n", data.Name)

	for _, f := range scaffold {
		path := filepath.Join(dir, f.path)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		err = templates.ExecuteTemplate(file, f.template, data)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "✔︎ created %s\n", path)
	}
	return nil
}
