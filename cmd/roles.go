package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-to-role/internal/catalog"
	"github.com/spigell/skill-to-role/internal/logger"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [name]",
	Short: "List the roles of the catalog or show a single role",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		store, err := loadCatalog(context.Background(), config, logger)
		if err != nil {
			logger.Fatal("loading the role catalog", zap.Error(err))
		}

		if len(args) == 0 {
			err = printRoles(os.Stdout, store.Roles())
		} else {
			err = printRole(os.Stdout, store, args[0])
		}
		if err != nil {
			logger.Fatal("printing roles", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(w io.Writer, roles []catalog.RoleRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tREQUIRED\tOPTIONAL")
	for _, role := range roles {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", role.Role, len(role.RequiredSkills), len(role.OptionalSkills))
	}
	return tw.Flush()
}

func printRole(w io.Writer, store *catalog.Store, name string) error {
	role := store.FindByName(name)
	if role == nil {
		return fmt.Errorf("there is no such role %q, known roles: %s", name, strings.Join(store.Names(), ", "))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Role:\t%s\n", role.Role)
	fmt.Fprintf(tw, "Required skills:\t%s\n", strings.Join(role.RequiredSkills, ", "))
	fmt.Fprintf(tw, "Optional skills:\t%s\n", strings.Join(role.OptionalSkills, ", "))
	fmt.Fprintf(tw, "Current salary:\t%s\n", role.SalaryInsights.CurrentRangeIndia)
	fmt.Fprintf(tw, "Potential salary:\t%s\n", role.SalaryInsights.HigherRangeIndia)
	fmt.Fprintf(tw, "Career tip:\t%s\n", role.CareerTip)
	return tw.Flush()
}
