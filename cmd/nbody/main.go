package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Harsh-Sinha/n-body-simulation/internal/config"
	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/particle"
	"github.com/Harsh-Sinha/n-body-simulation/internal/profile"
	"github.com/Harsh-Sinha/n-body-simulation/internal/sim"
	"github.com/Harsh-Sinha/n-body-simulation/internal/store"
	"github.com/Harsh-Sinha/n-body-simulation/internal/viz"
)

var (
	dt            float64
	length        float64
	theta         float64
	softening     float64
	workers       int
	maxPoints     int
	bulkThreshold int
	parallelBuild bool
	inFile        string
	outFile       string
	configFile    string
	profileFile   string

	// gen
	genN    int
	genOut  string
	genSeed int64
	boxMin  string
	boxMax  string
	massMin float64
	massMax float64
	velMin  float64
	velMax  float64
	accMin  float64
	accMax  float64

	// plot
	plotID     int
	plotAxis   string
	plotHeight int

	// bench
	benchN     int
	benchSeed  int64
	benchReps  int
	benchLeafs int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "nbody",
		Short:         "Barnes-Hut gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and write the playback file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, nil)
		},
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live progress view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "generate a random particle config file",
		RunE:  runGen,
	}
	genCmd.Flags().IntVar(&genN, "n", 1000, "number of particles")
	genCmd.Flags().Int64Var(&genSeed, "seed", 1, "random seed")
	genCmd.Flags().StringVarP(&genOut, "out", "o", "particles.cfg", "output config file")
	genCmd.Flags().StringVar(&boxMin, "box-min", "-1000,-1000,-1000", "lower corner x,y,z")
	genCmd.Flags().StringVar(&boxMax, "box-max", "1000,1000,1000", "upper corner x,y,z")
	genCmd.Flags().Float64Var(&massMin, "mass-min", 1e10, "lower mass limit")
	genCmd.Flags().Float64Var(&massMax, "mass-max", 1e12, "upper mass limit")
	genCmd.Flags().Float64Var(&velMin, "vel-min", 0, "lower velocity limit per component")
	genCmd.Flags().Float64Var(&velMax, "vel-max", 0, "upper velocity limit per component")
	genCmd.Flags().Float64Var(&accMin, "acc-min", 0, "lower acceleration limit per component")
	genCmd.Flags().Float64Var(&accMax, "acc-max", 0, "upper acceleration limit per component")

	plotCmd := &cobra.Command{
		Use:   "plot [playback_file]",
		Short: "plot one particle's trajectory from a playback file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotID, "id", 0, "particle id")
	plotCmd.Flags().StringVar(&plotAxis, "axis", "x", "coordinate to plot (x, y or z)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 20, "chart height")

	inspectCmd := &cobra.Command{
		Use:   "inspect [playback_file]",
		Short: "print playback file summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time octree construction, serial vs parallel",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchN, "n", 100000, "number of particles")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")
	benchCmd.Flags().IntVar(&benchReps, "reps", 3, "repetitions per variant")
	benchCmd.Flags().IntVar(&benchLeafs, "max-points", octree.DefaultMaxPointsPerNode, "leaf capacity")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = all cpus)")

	rootCmd.AddCommand(runCmd, liveCmd, genCmd, plotCmd, inspectCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&dt, "dt", "t", 0, "integration step (s)")
	cmd.Flags().Float64VarP(&length, "length", "l", 0, "simulated time span (s)")
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "particle config file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "out.nbody", "playback file to write")
	cmd.Flags().BoolVarP(&parallelBuild, "parallel", "p", true, "use the parallel builder and phases")
	cmd.Flags().Float64Var(&theta, "theta", 0.5, "opening angle")
	cmd.Flags().Float64Var(&softening, "softening", particle.DefaultSoftening, "force softening length")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = all cpus)")
	cmd.Flags().IntVar(&maxPoints, "max-points", 1, "leaf capacity of the simulation tree")
	cmd.Flags().IntVar(&bulkThreshold, "bulk-threshold", octree.DefaultBulkPartitionThreshold, "serial insertion threshold")
	cmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	cmd.Flags().StringVar(&profileFile, "profile", "", "write a per-section timing report here")
}

// buildConfig merges the optional yaml file with explicitly set flags; flags
// win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("dt") || cfg.Dt == 0 {
		cfg.Dt = dt
	}
	if set("length") || cfg.Length == 0 {
		cfg.Length = length
	}
	if set("theta") {
		cfg.Theta = theta
	}
	if set("softening") {
		cfg.Softening = softening
	}
	if set("workers") && workers > 0 {
		cfg.Workers = workers
	}
	if set("max-points") {
		cfg.MaxPointsPerNode = maxPoints
	}
	if set("bulk-threshold") {
		cfg.BulkPartitionThreshold = bulkThreshold
	}
	if set("parallel") {
		cfg.Parallel = parallelBuild
	}
	if set("in") {
		cfg.Input = inFile
	}
	if set("out") || cfg.Output == "" {
		cfg.Output = outFile
	}

	if cfg.Input == "" {
		return nil, fmt.Errorf("no particle config file (use --in or the config file's input field)")
	}
	return cfg, nil
}

// runSimulation executes a run; observer, when non-nil, receives per
// iteration progress.
func runSimulation(cmd *cobra.Command, observer sim.Observer) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		return err
	}

	particles, err := particle.Parse(cfg.Input)
	if err != nil {
		return err
	}

	st := store.New(len(particles), simCfg.Dt, simCfg.Iterations())

	simulator := sim.New(particles, simCfg, st)
	if observer != nil {
		simulator.AddObserver(observer)
	}

	var prof *profile.Profiler
	if profileFile != "" {
		prof = profile.New()
		simulator.SetProfiler(prof)
	}

	if err := simulator.Run(context.Background()); err != nil {
		return err
	}

	if err := st.WriteBinary(cfg.Output); err != nil {
		return err
	}

	if prof != nil {
		if err := prof.WriteReport(profileFile); err != nil {
			return err
		}
	}

	if observer == nil {
		fmt.Printf("simulated %d particles for %d iterations, wrote %s\n",
			len(particles), simCfg.Iterations(), cfg.Output)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		return err
	}
	particles, err := particle.Parse(cfg.Input)
	if err != nil {
		return err
	}

	model := viz.NewModel("nbody "+cfg.Input, len(particles), simCfg.Iterations())
	program := tea.NewProgram(model)

	go func() {
		st := store.New(len(particles), simCfg.Dt, simCfg.Iterations())
		simulator := sim.New(particles, simCfg, st)
		simulator.AddObserver(sim.ObserverFunc(func(iteration, total int, step time.Duration) {
			program.Send(viz.ProgressMsg{Iteration: iteration, Total: total, StepTime: step})
		}))

		err := simulator.Run(context.Background())
		if err == nil {
			err = st.WriteBinary(cfg.Output)
		}
		program.Send(viz.DoneMsg{Err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func runGen(cmd *cobra.Command, args []string) error {
	lo, err := parseTriple(boxMin)
	if err != nil {
		return fmt.Errorf("box-min: %w", err)
	}
	hi, err := parseTriple(boxMax)
	if err != nil {
		return fmt.Errorf("box-max: %w", err)
	}

	limits := particle.Limits{
		BoxMin: lo,
		BoxMax: hi,
		Mass:   [2]float64{massMin, massMax},
		Vel:    [2]float64{velMin, velMax},
		Acc:    [2]float64{accMin, accMax},
	}

	particles, err := particle.Generate(genN, limits, genSeed)
	if err != nil {
		return err
	}
	if err := particle.WriteConfig(genOut, particles); err != nil {
		return err
	}

	fmt.Printf("wrote %d particles to %s\n", genN, genOut)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	pb, err := store.ReadBinary(args[0])
	if err != nil {
		return err
	}
	axis, err := viz.ParseAxis(plotAxis)
	if err != nil {
		return err
	}
	chart, err := viz.TrajectoryPlot(pb, plotID, axis, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println(chart)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	pb, err := store.ReadBinary(args[0])
	if err != nil {
		return err
	}

	minMass, maxMass := pb.Masses[0], pb.Masses[0]
	for _, m := range pb.Masses {
		if m < minMass {
			minMass = m
		}
		if m > maxMass {
			maxMass = m
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file:\t%s\n", args[0])
	fmt.Fprintf(w, "particles:\t%d\n", pb.N)
	fmt.Fprintf(w, "dt:\t%g\n", pb.Dt)
	fmt.Fprintf(w, "frames:\t%d\n", len(pb.Frames))
	fmt.Fprintf(w, "span:\t%g s\n", pb.Dt*float64(len(pb.Frames)-1))
	fmt.Fprintf(w, "mass range:\t[%g, %g]\n", minMass, maxMass)
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	limits := particle.DefaultLimits()
	particles, err := particle.Generate(benchN, limits, benchSeed)
	if err != nil {
		return err
	}

	variants := []struct {
		name string
		opts octree.Options
	}{
		{"serial", octree.Options{MaxPointsPerNode: benchLeafs}},
		{"parallel", octree.Options{Parallel: true, MaxPointsPerNode: benchLeafs, Workers: workers}},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "variant\tbest\tmean\tleaves\n")
	for _, v := range variants {
		var total, best time.Duration
		leaves := 0
		for r := 0; r < benchReps; r++ {
			begin := time.Now()
			tree, err := octree.Build(particles, v.opts)
			elapsed := time.Since(begin)
			if err != nil {
				return err
			}
			leaves = len(tree.Leaves)
			total += elapsed
			if best == 0 || elapsed < best {
				best = elapsed
			}
		}
		mean := total / time.Duration(benchReps)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", v.name, best.Round(time.Microsecond), mean.Round(time.Microsecond), leaves)
	}
	return w.Flush()
}

func parseTriple(s string) (geom.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("bad component %q", part)
		}
		out[i] = v
	}
	return geom.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
