package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/rileyhilliard/slability/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# slability configuration
# Flags (-a, -t, -i) and SLABILITY_* environment variables override these values.
`

// Marshal renders cfg as commented YAML.
//
// The document is built as a yaml.Node tree rather than marshaled from the
// struct so unit comments survive next to the timing keys.
func Marshal(cfg *Config) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	addScalar(root, "version", strconv.Itoa(cfg.Version), "")
	addScalar(root, "timeout", strconv.Itoa(cfg.TimeoutMS), "milliseconds per connect attempt")
	addScalar(root, "interval", strconv.Itoa(cfg.IntervalMS), "milliseconds between probes")

	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, ep := range cfg.Targets {
		item := &yaml.Node{Kind: yaml.MappingNode}
		if ep.Label != "" {
			addString(item, "label", ep.Label)
		}
		addString(item, "address", ep.Address)
		list.Content = append(list.Content, item)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "endpoints"},
		list,
	)

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode the config",
			"This shouldn't happen - please report this bug")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode the config",
			"This shouldn't happen - please report this bug")
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path. An existing file is only replaced when overwrite
// is set.
func Save(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s already exists", path),
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check you have write permission in this directory")
	}
	return nil
}

func addScalar(mapping *yaml.Node, key, value, comment string) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: value, LineComment: comment},
	)
}

func addString(mapping *yaml.Node, key, value string) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
