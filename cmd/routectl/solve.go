package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
	"tour-route-service/internal/adapters/distance"
	"tour-route-service/internal/adapters/solver"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/config"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/services"

	"github.com/spf13/cobra"
)

type solveOptions struct {
	file   string
	budget time.Duration
	home   string
	seed   uint64
}

func newSolveCmd() *cobra.Command {
	opts := solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a tour for the destinations in a JSON file and print it",
		Long: `Reads a JSON array of {"name","x","y"} objects (use "-" for stdin),
computes a closed tour within the time budget and prints the visiting order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "destinations JSON file, or - for stdin")
	cmd.Flags().DurationVarP(&opts.budget, "budget", "b", config.DefaultTimeBudget, "solver time budget")
	cmd.Flags().StringVar(&opts.home, "home", "", "name of the destination the tour starts from")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSolve(ctx context.Context, opts solveOptions, stdin io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.budget <= 0 {
		return fmt.Errorf("solve: --budget must be positive, got %s", opts.budget)
	}

	destinations, names, err := readDestinations(opts.file, stdin)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	matrix := distance.NewEuclideanMatrix()
	tsp, err := solver.NewAnnealingSolver(matrix, seed)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	rec, err := services.NewRouteReconstructor(tsp, matrix, opts.budget)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	route, err := rec.CalculateRoute(ctx, services.RouteRequest{
		Destinations: destinations,
		Names:        names,
	})
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	if opts.home != "" {
		rotated, ok := services.RotateToStart(route, opts.home)
		if !ok {
			return fmt.Errorf("solve: home %q is not one of the destinations", opts.home)
		}
		route = rotated
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(toResponse(route))
}

func readDestinations(path string, stdin io.Reader) ([]domain.Location, []string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read destinations: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var items []dto.DestinationRequest
	if err := dec.Decode(&items); err != nil {
		return nil, nil, fmt.Errorf("read destinations: parse json: %w", err)
	}

	destinations := make([]domain.Location, 0, len(items))
	names := make([]string, 0, len(items))
	for i, d := range items {
		if d.X == nil || d.Y == nil {
			return nil, nil, fmt.Errorf("read destinations: item %d: x and y are required", i)
		}
		destinations = append(destinations, domain.Location{X: *d.X, Y: *d.Y})
		names = append(names, d.Name)
	}

	return destinations, names, nil
}

func toResponse(route *domain.Route) dto.RouteResponse {
	res := dto.RouteResponse{
		TotalDistance: route.TotalDistance,
		Stops:         make([]dto.StopResponse, 0, len(route.Stops)),
	}
	for i, s := range route.Stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			Name:            route.Labels[i],
			X:               s.Location.X,
			Y:               s.Location.Y,
			NextHopDistance: s.NextHopDistance,
		})
	}
	return res
}
