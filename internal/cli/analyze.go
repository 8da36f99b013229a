package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ecosense/internal/bootstrap"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/carbon"
	"github.com/bryanwahyu/ecosense/internal/domain/habitat"
	"github.com/bryanwahyu/ecosense/internal/domain/reforestation"
	"github.com/bryanwahyu/ecosense/internal/domain/species"
	"github.com/bryanwahyu/ecosense/internal/logger"
	"github.com/bryanwahyu/ecosense/internal/middleware"
)

func analyzeCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis and print the result",
	}
	cmd.AddCommand(
		habitatCommand(st),
		speciesCommand(st),
		reforestationCommand(st),
		carbonCommand(st),
	)
	return cmd
}

func habitatCommand(st *state) *cobra.Command {
	var location, category string
	cmd := &cobra.Command{
		Use:   "habitat [image]",
		Short: "Assess the habitat shown in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readImage(args[0])
			if err != nil {
				return err
			}
			return st.run(cmd, func(ctx context.Context, app *bootstrap.App) (analysis.AnalysisID, any, error) {
				rep, err := app.Habitat.Analyze(ctx, st.tenant(), habitat.Request{
					Upload: upload, Location: location, Category: category,
				})
				if err != nil {
					return "", nil, err
				}
				return rep.ID, rep, nil
			})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Where the image was taken")
	cmd.Flags().StringVar(&category, "habitat-type", "", "Known habitat category, e.g. forest, wetland")
	return cmd
}

func speciesCommand(st *state) *cobra.Command {
	var location, notes string
	cmd := &cobra.Command{
		Use:   "species [image]",
		Short: "Identify the species in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readImage(args[0])
			if err != nil {
				return err
			}
			return st.run(cmd, func(ctx context.Context, app *bootstrap.App) (analysis.AnalysisID, any, error) {
				rep, err := app.Species.Analyze(ctx, st.tenant(), species.Request{
					Upload: upload, Location: location, Notes: notes,
				})
				if err != nil {
					return "", nil, err
				}
				return rep.ID, rep, nil
			})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Where the image was taken")
	cmd.Flags().StringVar(&notes, "notes", "", "Observation notes")
	return cmd
}

func reforestationCommand(st *state) *cobra.Command {
	var req reforestation.Request
	cmd := &cobra.Command{
		Use:   "reforestation [image]",
		Short: "Plan reforestation for the site in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readImage(args[0])
			if err != nil {
				return err
			}
			req.Upload = upload
			return st.run(cmd, func(ctx context.Context, app *bootstrap.App) (analysis.AnalysisID, any, error) {
				rep, err := app.Reforestation.Analyze(ctx, st.tenant(), req)
				if err != nil {
					return "", nil, err
				}
				return rep.ID, rep, nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Location, "location", "", "Site location")
	cmd.Flags().StringVar(&req.SoilType, "soil", "", "Soil type, e.g. clay, loam")
	cmd.Flags().StringVar(&req.Climate, "climate", "", "Climate, e.g. tropical, temperate")
	cmd.Flags().Float64Var(&req.AreaHectares, "area", 0, "Site area in hectares")
	return cmd
}

func carbonCommand(st *state) *cobra.Command {
	var values map[string]string
	var file string
	cmd := &cobra.Command{
		Use:   "carbon",
		Short: "Estimate an annual carbon footprint",
		Example: "  ecosense analyze carbon --activity car_miles_per_week=120 --activity flights_per_year=2\n" +
			"  ecosense analyze carbon --file activities.json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := parseActivities(values, file)
			if err != nil {
				return err
			}
			return st.run(cmd, func(ctx context.Context, app *bootstrap.App) (analysis.AnalysisID, any, error) {
				rep, err := app.Carbon.Analyze(ctx, st.tenant(), carbon.Request{Activities: activities})
				if err != nil {
					return "", nil, err
				}
				return rep.ID, rep, nil
			})
		},
	}
	cmd.Flags().StringToStringVar(&values, "activity", nil, "Activity value as key=number, repeatable")
	cmd.Flags().StringVar(&file, "file", "", "JSON file with an object of activity values")
	return cmd
}

// run bootstraps the app, executes fn and prints its report.
func (st *state) run(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) (analysis.AnalysisID, any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, st.log)
	app, err := st.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	id, rep, err := fn(ctx, app)
	if err != nil {
		return err
	}
	return st.print(ctx, cmd.OutOrStdout(), app, id, rep)
}

func (st *state) print(ctx context.Context, w io.Writer, app *bootstrap.App, id analysis.AnalysisID, rep any) error {
	if st.v.GetString("output") == FormatMarkdown {
		doc, err := app.Analyses.Report(ctx, st.tenant(), id)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func (st *state) tenant() string {
	if t := st.v.GetString("tenant"); t != "" {
		return t
	}
	return "local"
}

func readImage(path string) (*analysis.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	ct, err := middleware.ValidateUpload(data)
	if err != nil {
		return nil, err
	}
	return &analysis.Upload{Filename: filepath.Base(path), ContentType: ct, Data: data}, nil
}
