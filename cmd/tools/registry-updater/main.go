// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"recommendation-workers/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add-keyword", flag.ExitOnError)
	removeCmd := flag.NewFlagSet("remove-keyword", flag.ExitOnError)
	bumpCmd := flag.NewFlagSet("bump", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	listAdd := addCmd.String("list", "", "Target list: gaming, or a tier name (high-end, mid, entry)")
	keywordAdd := addCmd.String("keyword", "", "Keyword to add (lowercase)")
	addCmd.StringVar(&registryPath, "path", "configs/keyword-registry.json", "Path to registry file")

	// Remove command flags
	listRemove := removeCmd.String("list", "", "Target list: gaming, or a tier name")
	keywordRemove := removeCmd.String("keyword", "", "Keyword to remove")
	removeCmd.StringVar(&registryPath, "path", "configs/keyword-registry.json", "Path to registry file")

	// Bump command flags
	version := bumpCmd.String("version", "", "New registry version (e.g., 1.1.0)")
	bumpCmd.StringVar(&registryPath, "path", "configs/keyword-registry.json", "Path to registry file")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/keyword-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-keyword":
		addCmd.Parse(os.Args[2:])
		if *listAdd == "" || *keywordAdd == "" {
			fmt.Println("Error: list and keyword are required for add-keyword.")
			addCmd.Usage()
			os.Exit(1)
		}
		if err := addKeyword(*listAdd, *keywordAdd); err != nil {
			fmt.Printf("Error adding keyword: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added keyword %q to %s\n", *keywordAdd, *listAdd)

	case "remove-keyword":
		removeCmd.Parse(os.Args[2:])
		if *listRemove == "" || *keywordRemove == "" {
			fmt.Println("Error: list and keyword are required for remove-keyword.")
			removeCmd.Usage()
			os.Exit(1)
		}
		if err := removeKeyword(*listRemove, *keywordRemove); err != nil {
			fmt.Printf("Error removing keyword: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed keyword %q from %s\n", *keywordRemove, *listRemove)

	case "bump":
		bumpCmd.Parse(os.Args[2:])
		if *version == "" {
			fmt.Println("Error: version is required for bump.")
			bumpCmd.Usage()
			os.Exit(1)
		}
		if err := bumpVersion(*version); err != nil {
			fmt.Printf("Error bumping version: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry version set to %s\n", *version)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Version %s, %d tiers, %d gaming keywords.\n",
			reg.Version, len(reg.Tiers), len(reg.GamingKeywords))

	case "help":
		fallthrough
	default:
		help()
	}
}

func addKeyword(list, keyword string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return fmt.Errorf("keyword is blank")
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if list == "gaming" {
		for _, kw := range reg.GamingKeywords {
			if kw == keyword {
				return fmt.Errorf("keyword %q already in gaming list", keyword)
			}
		}
		reg.GamingKeywords = append(reg.GamingKeywords, keyword)
		return save(reg)
	}

	for i := range reg.Tiers {
		if reg.Tiers[i].Name != list {
			continue
		}
		for _, kw := range reg.Tiers[i].Keywords {
			if kw == keyword {
				return fmt.Errorf("keyword %q already in tier %q", keyword, list)
			}
		}
		reg.Tiers[i].Keywords = append(reg.Tiers[i].Keywords, keyword)
		return save(reg)
	}

	return fmt.Errorf("unknown list %q (use gaming or a tier name)", list)
}

func removeKeyword(list, keyword string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if list == "gaming" {
		filtered := reg.GamingKeywords[:0]
		found := false
		for _, kw := range reg.GamingKeywords {
			if kw == keyword {
				found = true
				continue
			}
			filtered = append(filtered, kw)
		}
		if !found {
			return fmt.Errorf("keyword %q not in gaming list", keyword)
		}
		reg.GamingKeywords = filtered
		return save(reg)
	}

	for i := range reg.Tiers {
		if reg.Tiers[i].Name != list {
			continue
		}
		filtered := reg.Tiers[i].Keywords[:0]
		found := false
		for _, kw := range reg.Tiers[i].Keywords {
			if kw == keyword {
				found = true
				continue
			}
			filtered = append(filtered, kw)
		}
		if !found {
			return fmt.Errorf("keyword %q not in tier %q", keyword, list)
		}
		reg.Tiers[i].Keywords = filtered
		return save(reg)
	}

	return fmt.Errorf("unknown list %q (use gaming or a tier name)", list)
}

func bumpVersion(version string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	reg.Version = version
	return save(reg)
}

// save revalidates, stamps lastUpdated and writes the registry back.
func save(reg *registry.KeywordRegistry) error {
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry invalid after edit: %w", err)
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return registry.SaveRegistry(registryPath, reg)
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add-keyword    Add a keyword to the gaming list or a tier
  remove-keyword Remove a keyword from the gaming list or a tier
  bump           Set the registry version
  validate       Validate the registry file
  help           Show this help message

Examples:
  registry-updater add-keyword -list high-end -keyword "rtx 6090"
  registry-updater add-keyword -list gaming -keyword alienware
  registry-updater remove-keyword -list entry -keyword vega
  registry-updater bump -version 1.1.0
  registry-updater validate -path configs/keyword-registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
