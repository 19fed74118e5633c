// Package locate finds the input PDF: an explicit path, a fallback lookup
// in the configured input folder, or an interactive pick among candidates.
package locate

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/common"
)

// Locator resolves the input PDF path. Prompts read from `in` and write to
// `out` so tests can script the interaction.
type Locator struct {
	inputDir string
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger
}

func NewLocator(inputDir string, in io.Reader, out io.Writer, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Locator{
		inputDir: inputDir,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logger,
	}
}

// ListCandidates returns the PDF filenames in dir, sorted so the order is
// stable within a run. A missing directory yields no candidates.
func ListCandidates(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsPDF(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Resolve turns an explicit path (or none) into a usable PDF path.
//
// With an explicit path: use it if it exists, otherwise look for a file of
// the same name in the input folder. Without one: a single candidate is
// used directly, several prompt for a 1-based pick (empty input means the
// first), and none prompts for a manual path.
func (l *Locator) Resolve(explicit string) (string, error) {
	if explicit != "" {
		return l.resolveExplicit(explicit)
	}

	candidates := ListCandidates(l.inputDir)
	switch len(candidates) {
	case 0:
		return l.promptManualPath()
	case 1:
		fmt.Fprintf(l.out, "Found PDF file: %s\n", candidates[0])
		return filepath.Join(l.inputDir, candidates[0]), nil
	default:
		return l.promptSelection(candidates)
	}
}

func (l *Locator) resolveExplicit(path string) (string, error) {
	if fileExists(path) {
		return path, nil
	}
	// Not where the caller said; same-named file in the input folder?
	fallback := filepath.Join(l.inputDir, filepath.Base(path))
	if fileExists(fallback) {
		l.logger.Info("pdf found in input folder", "path", fallback)
		return fallback, nil
	}
	return "", common.NewAppError("PDF_NOT_FOUND",
		fmt.Sprintf("PDF file not found: %s (also checked %s)", path, fallback),
		common.ErrNotFound)
}

func (l *Locator) promptSelection(candidates []string) (string, error) {
	fmt.Fprintf(l.out, "Found %d PDF files in %s:\n", len(candidates), l.inputDir)
	for i, name := range candidates {
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, name)
	}

	for {
		fmt.Fprintf(l.out, "\nSelect a file (1-%d) or press Enter for first file: ", len(candidates))
		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			// stdin closed: fall back to the first candidate
			return filepath.Join(l.inputDir, candidates[0]), nil
		}
		choice := strings.TrimSpace(line)
		if choice == "" {
			fmt.Fprintf(l.out, "Using: %s\n", candidates[0])
			return filepath.Join(l.inputDir, candidates[0]), nil
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil {
			fmt.Fprintln(l.out, "Please enter a valid number")
			continue
		}
		if idx < 1 || idx > len(candidates) {
			fmt.Fprintf(l.out, "Please enter a number between 1 and %d\n", len(candidates))
			continue
		}
		return filepath.Join(l.inputDir, candidates[idx-1]), nil
	}
}

func (l *Locator) promptManualPath() (string, error) {
	fmt.Fprintf(l.out, "No PDF files found in %s.\n", l.inputDir)
	fmt.Fprint(l.out, "Enter PDF file path: ")
	line, _ := l.in.ReadString('\n')
	path := strings.Trim(strings.TrimSpace(line), `"`)
	if path == "" {
		return "", common.NewAppError("PDF_NOT_FOUND", "no PDF file specified", common.ErrNotFound)
	}
	return l.resolveExplicit(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
