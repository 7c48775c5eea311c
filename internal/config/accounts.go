package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/polkiloo/checkin/internal/domain/model"
)

type accountsFile struct {
	Accounts []struct {
		Token  string `yaml:"token"`
		Cookie string `yaml:"cookie"`
	} `yaml:"accounts"`
}

// ReadAccountsFile loads token/cookie pairs from a YAML document.
func ReadAccountsFile(path string) ([]model.Account, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var doc accountsFile
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}

	accounts := make([]model.Account, 0, len(doc.Accounts))
	for i, a := range doc.Accounts {
		accounts = append(accounts, model.Account{
			Index:        i + 1,
			CoinsToken:   model.Credential(strings.TrimSpace(a.Token)),
			PointsCookie: model.Credential(strings.TrimSpace(a.Cookie)),
		})
	}
	return accounts, nil
}
