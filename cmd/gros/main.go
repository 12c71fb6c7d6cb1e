package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/BjoB/gros/internal/config"
	"github.com/BjoB/gros/internal/export"
	"github.com/BjoB/gros/internal/integrators"
	"github.com/BjoB/gros/internal/metrics"
	"github.com/BjoB/gros/internal/store"
	"github.com/BjoB/gros/internal/trajectory"
	"github.com/BjoB/gros/internal/tui"
	"github.com/BjoB/gros/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	mass          float64
	posR          float64
	posTheta      float64
	posPhi        float64
	velR          float64
	velTheta      float64
	velPhi        float64
	stepSize      float64
	properTimeEnd float64

	animStepSize float64
	svgPath      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gros",
		Short: "general relativity orbit simulator",
		Long:  "Simulates test particle worldlines in the Schwarzschild spacetime by integrating the geodesic equation.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gros", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a trajectory and store it",
		RunE:  runTrajectory,
	}
	runCmd.Flags().Float64Var(&mass, "mass", 0, "central mass [kg]")
	runCmd.Flags().Float64Var(&posR, "r", 0, "initial radius [m]")
	runCmd.Flags().Float64Var(&posTheta, "theta", 0, "initial polar angle [rad]")
	runCmd.Flags().Float64Var(&posPhi, "phi", 0, "initial azimuth [rad]")
	runCmd.Flags().Float64Var(&velR, "vr", 0, "initial dr/dtau")
	runCmd.Flags().Float64Var(&velTheta, "vtheta", 0, "initial dtheta/dtau")
	runCmd.Flags().Float64Var(&velPhi, "vphi", 0, "initial dphi/dtau")
	runCmd.Flags().Float64Var(&stepSize, "step", 0, "step size [s]")
	runCmd.Flags().Float64Var(&properTimeEnd, "time", 0, "proper time window [s]")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	animateCmd := &cobra.Command{
		Use:   "animate [run_id]",
		Short: "play a stored trajectory as a terminal animation",
		Args:  cobra.ExactArgs(1),
		RunE:  animateRun,
	}
	animateCmd.Flags().Float64Var(&animStepSize, "anim-step", 0, "animation step size [s of proper time per frame]")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "out", "trajectory.svg", "output file path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS [kg]\tR [m]\tSTEP [s]\tWINDOW [s]")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n",
					name, cfg.Mass, cfg.Position.R, cfg.StepSize, cfg.ProperTimeEnd)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, animateCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sceneConfig resolves the scenario from preset, config file and flags, in
// ascending precedence.
func sceneConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("r") {
		cfg.Position.R = posR
	}
	if cmd.Flags().Changed("theta") {
		cfg.Position.Theta = posTheta
	}
	if cmd.Flags().Changed("phi") {
		cfg.Position.Phi = posPhi
	}
	if cmd.Flags().Changed("vr") {
		cfg.Velocity.R = velR
	}
	if cmd.Flags().Changed("vtheta") {
		cfg.Velocity.Theta = velTheta
	}
	if cmd.Flags().Changed("vphi") {
		cfg.Velocity.Phi = velPhi
	}
	if cmd.Flags().Changed("step") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("time") {
		cfg.ProperTimeEnd = properTimeEnd
	}
	return cfg, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := sceneConfig(cmd)
	if err != nil {
		return err
	}

	m, err := cfg.Metric()
	if err != nil {
		return err
	}

	g, err := integrators.NewGeodesic(m, cfg.StepSize,
		integrators.WithProperTimeStart(0),
		integrators.WithProperTimeEnd(cfg.ProperTimeEnd),
		integrators.WithObserver(integrators.WarnFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, "warning:", msg)
		})),
	)
	if err != nil {
		return err
	}

	drift := metrics.NewDrift(metrics.Evaluate(m, m.InitialState()))
	ds := trajectory.NewEmpty(m.Radius())
	for g.Next() {
		if err := ds.Append(g.Tau(), g.State()); err != nil {
			return err
		}
		drift.Observe(metrics.Evaluate(m, g.State()))
	}
	if err := g.Err(); err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Mass:          cfg.Mass,
		StepSize:      cfg.StepSize,
		ProperTimeEnd: cfg.ProperTimeEnd,
		Status:        g.Status().String(),
	}, ds)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d points, status %q\n", runID, ds.Size(), g.Status())
	fmt.Printf("rs=%g m, energy drift %.3g, angular momentum drift %.3g\n",
		m.Radius(), drift.Energy(), drift.AngularMomentum())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIMESTAMP\tMASS [kg]\tRS [m]\tPOINTS\tSTATUS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Mass, r.Rs, r.Points, r.Status)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	ds, err := store.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Print(viz.OrbitPlot(ds, 80, 30))

	points := ds.Points()
	if len(points) < 2 {
		return nil
	}
	radii := make([]float64, len(points))
	for i, p := range points {
		radii[i] = math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(radii,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("radial distance r [m] over sample index"),
	))
	return nil
}

func animateRun(cmd *cobra.Command, args []string) error {
	ds, err := store.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return tui.Run(ds, animStepSize)
}

func exportRun(cmd *cobra.Command, args []string) error {
	ds, err := store.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectorySVG(ds, 1200, 900)
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d points)\n", svgPath, ds.Size())
	return nil
}
