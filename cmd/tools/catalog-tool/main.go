// cmd/tools/catalog-tool/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"foresight-workers/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var registryPath string
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	for _, fs := range []*flag.FlagSet{addCmd, updateCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "configs/techniques.json", "Path to technique registry file")
	}

	// Add command flags
	id := addCmd.String("id", "", "Technique ID (e.g., delphi)")
	name := addCmd.String("name", "", "Display name (e.g., Delphi Method)")
	category := addCmd.String("category", "", "exploratory, structural, participatory or validation")
	complexity := addCmd.Int("complexity", 3, "Complexity from 1 to 5")
	tags := addCmd.String("tags", "", "Comma separated tags (e.g., participatory,workshop)")
	horizon := addCmd.String("timeHorizon", "", "Typical time horizon")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Technique ID to update")
	field := updateCmd.String("field", "", "Field to update (name, category, complexity, tags, ...)")
	value := updateCmd.String("value", "", "New value for the field")

	switch os.Args[1] {
	case "add":
		_ = addCmd.Parse(os.Args[2:])
		if *id == "" || *name == "" || *category == "" {
			fmt.Println("Error: id, name and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		reg := loadOrCreate(registryPath)
		t := registry.Technique{
			ID:          *id,
			Name:        *name,
			Category:    *category,
			Complexity:  *complexity,
			TimeHorizon: *horizon,
		}
		for _, tag := range strings.Split(*tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				t.Tags = append(t.Tags, tag)
			}
		}
		exitOn(reg.Add(t), "Error adding technique")
		exitOn(reg.Validate(), "Registry would become invalid")
		exitOn(registry.Save(reg, registryPath), "Error saving registry")
		fmt.Printf("Added technique: %s\n", *id)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" {
			fmt.Println("Error: id and field are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		reg, err := registry.LoadRegistry(registryPath)
		exitOn(err, "Error loading registry")
		exitOn(reg.Update(*idUpdate, *field, *value), "Error updating technique")
		exitOn(reg.Validate(), "Registry would become invalid")
		exitOn(registry.Save(reg, registryPath), "Error saving registry")
		fmt.Printf("Updated technique %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		exitOn(err, "Error loading registry")
		exitOn(reg.Validate(), "Registry validation failed")
		fmt.Printf("Registry validation passed. Found %d techniques.\n", len(reg.Techniques))

	default:
		help()
	}
}

func loadOrCreate(path string) *registry.TechniqueRegistry {
	reg, err := registry.LoadRegistry(path)
	if err == nil {
		return reg
	}
	if os.IsNotExist(err) {
		return &registry.TechniqueRegistry{Version: "1.0.0"}
	}
	exitOn(err, "Error loading registry")
	return nil
}

func exitOn(err error, msg string) {
	if err != nil {
		fmt.Printf("%s: %v\n", msg, err)
		os.Exit(1)
	}
}

func help() {
	fmt.Println(`
Usage: catalog-tool <command> [flags]

Commands:
  add      Add a technique to the registry
  update   Update a field of an existing technique
  validate Validate the registry file
  help     Show this help message

Examples:
  catalog-tool add -id delphi -name "Delphi Method" -category participatory -complexity 4 -tags participatory
  catalog-tool update -id delphi -field tags -value participatory,workshop
  catalog-tool validate -path configs/techniques.json`)
}
