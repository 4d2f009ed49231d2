package repl

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fenlang/fen/logs"
	"github.com/peterh/liner"
)

// ReadInput reads one line from the user. It returns io.EOF when the user
// hangs up, on ctrl-d or ctrl-c.
type ReadInput func(prompt string) (string, error)

func (Module) ReadInput(
	logger logs.Logger,
) ReadInput {

	getHistoryPath := sync.OnceValues(func() (string, error) {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "fen", "history"), nil
	})

	return func(prompt string) (string, error) {

		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)
		line.SetMultiLineMode(true)

		historyPath, err := getHistoryPath()
		if err != nil {
			logger.Warn("get history path error", "err", err)
		} else {
			if f, err := os.Open(historyPath); err == nil {
				line.ReadHistory(f)
				f.Close()
			}
		}

		input, err := line.Prompt(prompt)
		if err != nil {
			switch err {
			case io.EOF, liner.ErrPromptAborted:
				return "", io.EOF
			}
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return "", nil
		}
		line.AppendHistory(input)

		if historyPath != "" {
			if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
				logger.Warn("create history dir error", "err", err)
			} else {
				if f, err := os.Create(historyPath); err != nil {
					logger.Warn("create history file error", "err", err)
				} else {
					line.WriteHistory(f)
					f.Close()
				}
			}
		}

		return input, nil
	}
}
