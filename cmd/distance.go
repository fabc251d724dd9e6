package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geodist/pkg/geodesic"
)

var distanceCmd = &cobra.Command{
	Use:   "distance [LAT,LON LAT,LON]",
	Short: "Great-circle distance between points",
	Long:  "Computes the spherical great-circle distance in meters between two points, or between every pair in a CSV file (lat1,lon1,lat2,lon2 per row).",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairsPath, _ := cmd.Flags().GetString("pairs")

		if pairsPath != "" {
			return runDistanceBatch(cmd, pairsPath)
		}

		if len(args) != 2 {
			return eris.New("distance: provide two LAT,LON arguments or --pairs")
		}

		from, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		to, err := parsePoint(args[1])
		if err != nil {
			return err
		}

		d, err := geodesic.Between(from, to)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", d.Meters())
		return nil
	},
}

// runDistanceBatch evaluates every pair in the CSV concurrently, emitting
// results in input order.
func runDistanceBatch(cmd *cobra.Command, path string) error {
	pairs, err := readPairsCSV(path)
	if err != nil {
		return err
	}

	zap.L().Info("evaluating distance pairs",
		zap.Int("pairs", len(pairs)),
		zap.Int("concurrency", cfg.Batch.MaxConcurrentPairs),
	)

	results := make([]geodesic.Distance, len(pairs))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Batch.MaxConcurrentPairs)

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			d, err := geodesic.Between(pair.From, pair.To)
			if err != nil {
				return eris.Wrapf(err, "distance: pair %d", i)
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, d := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", d.Meters())
	}
	return nil
}

func readPairsCSV(path string) ([]geodesic.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "distance: open %s", path)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "distance: read %s", path)
	}

	pairs := make([]geodesic.Pair, 0, len(records))
	for row, record := range records {
		if len(record) != 4 {
			return nil, eris.Errorf("distance: row %d has %d fields, want 4", row+1, len(record))
		}

		values := make([]float64, 4)
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "distance: row %d field %d", row+1, i+1)
			}
			values[i] = v
		}

		from, err := geodesic.NewPoint(values[0], values[1])
		if err != nil {
			return nil, eris.Wrapf(err, "distance: row %d", row+1)
		}
		to, err := geodesic.NewPoint(values[2], values[3])
		if err != nil {
			return nil, eris.Wrapf(err, "distance: row %d", row+1)
		}
		pairs = append(pairs, geodesic.Pair{From: from, To: to})
	}

	return pairs, nil
}

func init() {
	distanceCmd.Flags().String("pairs", "", "CSV file of lat1,lon1,lat2,lon2 rows to evaluate in batch")
	rootCmd.AddCommand(distanceCmd)
}
