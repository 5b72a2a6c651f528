package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastrkit/refschema"
)

var (
	dbURL      string
	mysqlURL   string
	sqlitePath string
	schemaName string
)

var rootCmd = &cobra.Command{
	Use:   "refschema",
	Short: "Provision the energy-market registry's lookup tables",
	Long: `Refschema creates the reference tables that decode the numeric
classification codes of the national energy-market registry (energy source,
federal state, country, audit status, site type, feed-in type, turbine
manufacturer, power limitation, generation technology), each with a unique
index on its id column.

Provisioning is a reset: apply drops and recreates every lookup table, so
the store always matches the declared structure. Rows are loaded separately
after provisioning.`,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Drop and recreate the lookup tables (destructive)",
	RunE:  runApply,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the DDL statements apply would execute",
	RunE:  runPlan,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare the live table structure against the declared one",
	RunE:  runVerify,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.PersistentFlags().StringVarP(&schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL)")
	rootCmd.AddCommand(applyCmd, planCmd, verifyCmd)
}

// resolveDatabaseURL builds the connection URL from the database flags,
// requiring exactly one of them.
func resolveDatabaseURL() (string, error) {
	dbCount := 0
	if dbURL != "" {
		dbCount++
	}
	if mysqlURL != "" {
		dbCount++
	}
	if sqlitePath != "" {
		dbCount++
	}
	if dbCount == 0 {
		return "", fmt.Errorf("one of --db-url, --mysql-url, or --sqlite must be specified")
	}
	if dbCount > 1 {
		return "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	switch {
	case mysqlURL != "":
		if strings.HasPrefix(mysqlURL, "mysql://") {
			return mysqlURL, nil
		}
		return "mysql://" + mysqlURL, nil
	case sqlitePath != "":
		if strings.HasPrefix(sqlitePath, "sqlite://") {
			return sqlitePath, nil
		}
		return "sqlite://" + sqlitePath, nil
	default:
		return dbURL, nil
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	url, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	result, applyErr := refschema.Apply(ctx, url, &refschema.Options{SchemaName: schemaName})
	if result != nil {
		for _, sr := range result.Statements {
			fmt.Printf("%-7s  %s %s\n", sr.Status, sr.Statement.Kind, sr.Statement.Object)
		}
		fmt.Printf("%d/%d statements applied\n", result.Applied, len(result.Statements))
	}
	if applyErr != nil {
		return fmt.Errorf("apply failed: %w", applyErr)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	url, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	statements, err := refschema.Plan(url, &refschema.Options{SchemaName: schemaName})
	if err != nil {
		return fmt.Errorf("failed to plan: %w", err)
	}

	for _, stmt := range statements {
		fmt.Printf("%s;\n", stmt.SQL)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	url, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	result, err := refschema.Verify(ctx, url, &refschema.Options{SchemaName: schemaName})
	if err != nil {
		return fmt.Errorf("failed to verify: %w", err)
	}

	if !result.OK() {
		for _, mismatch := range result.Mismatches {
			fmt.Fprintf(os.Stderr, "mismatch: %s\n", mismatch)
		}
		return fmt.Errorf("%d mismatches across %d tables", len(result.Mismatches), result.Tables)
	}

	fmt.Printf("%d tables match the declared structure\n", result.Tables)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
