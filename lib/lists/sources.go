package lists

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"spamdomains/lib/utils"
)

// ReadSourcesFile reads a newline-delimited file of source URLs. Blank lines
// and lines starting with "#" are skipped.
func ReadSourcesFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file '%s': %v", path, err)
	}
	defer utils.CloseOrWarn(file)

	var sources []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sources file '%s': %v", path, err)
	}

	return sources, nil
}
