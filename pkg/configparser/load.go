package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile walks a YAML file line by line and exports every scalar
// as an environment variable. Section names become underscore-joined
// prefixes, so `server: port:` turns into SERVER_PORT. Variables already
// present in the environment win over the file.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	sections := []string{}
	prevIndent := 0

	for scanner.Scan() {
		line := scanner.Text()

		entry := strings.TrimSpace(line)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}

		indent := leadingSpaces(line)
		if indent < prevIndent {
			// dedent: drop one section prefix per two spaces
			drop := (prevIndent - indent) / 2
			for i := 0; i < drop && len(sections) > 0; i++ {
				sections = sections[:len(sections)-1]
			}
		}
		prevIndent = indent

		// a bare "name:" opens a nested section
		if strings.HasSuffix(entry, ":") && !strings.Contains(entry, ": ") {
			sections = append(sections, strings.TrimSuffix(entry, ":"))
			continue
		}

		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value == "" {
			continue
		}
		value = expandDefault(value)

		name := strings.ToUpper(key)
		if len(sections) > 0 {
			name = strings.ToUpper(strings.Join(append(sections, key), "_"))
		}

		if os.Getenv(name) == "" {
			if err := os.Setenv(name, value); err != nil {
				return fmt.Errorf("could not set env var %s: %w", name, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	return nil
}

func leadingSpaces(line string) int {
	n := 0
	for _, ch := range line {
		if ch != ' ' {
			break
		}
		n++
	}
	return n
}

// expandDefault resolves the ${VAR:-fallback} substitution form.
func expandDefault(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	name, fallback, ok := strings.Cut(value[2:len(value)-1], ":-")
	if !ok {
		return value
	}
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	return strings.TrimSpace(fallback)
}
