package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/scenepack"
	"github.com/esimov/scenepack/utils"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌┐┌┌─┐┌─┐┌─┐┌─┐┬┌─
└─┐│  ├┤ │││├┤ ├─┘├─┤│  ├┴┐
└─┘└─┘└─┘┘└┘└─┘┴  ┴ ┴└─┘┴ ┴

Scene generation and serialization toolkit.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

var (
	// Flags
	count       = flag.Int("count", 20, "Number of generated shapes")
	stageWidth  = flag.Int("width", 1280, "Stage width")
	stageHeight = flag.Int("height", 720, "Stage height")
	seed        = flag.Int64("seed", 0, "Generator seed, 0 picks a time based one")
	strategy    = flag.String("strategy", "", "Encoding strategy, empty runs all of them")
	output      = flag.String("out", ".", "Output directory, or '-' for stdout")
	snapshot    = flag.String("snapshot", "", "Write a raster snapshot of the scene (png, jpg or bmp)")
	svgOut      = flag.String("svg", "", "Write a vector snapshot of the scene")
	thumb       = flag.Int("thumb", 0, "Thumbnail width of the raster snapshot")
	blendMode   = flag.String("blend", "", "Blend mode applied to the snapshot shape layer")
	labels      = flag.Bool("labels", false, "Stamp the shape ids onto the snapshots")
	report      = flag.Bool("report", false, "Write an export report next to the payloads")
	quiet       = flag.Bool("quiet", false, "Suppress the library debug logging")
)

// reportEntry describes one payload of the export report.
type reportEntry struct {
	Strategy string  `json:"strategy"`
	File     string  `json:"file,omitempty"`
	Size     int     `json:"size"`
	Checksum string  `json:"sha256"`
	Savings  float64 `json:"savingsPct"`
	Elapsed  string  `json:"elapsed"`
}

// exportReport is the manifest written by the -report flag.
type exportReport struct {
	Session string        `json:"session"`
	Created time.Time     `json:"created"`
	Seed    int64         `json:"seed,omitempty"`
	Stage   string        `json:"stage"`
	Count   int           `json:"count"`
	Exports []reportEntry `json:"exports"`
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *count <= 0 || *stageWidth <= 0 || *stageHeight <= 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a positive shape count and stage size!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
	if !*quiet {
		scenepack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	gen := scenepack.NewGenerator()
	if *seed != 0 {
		gen.Rand = rand.New(rand.NewSource(*seed))
	}

	strategies := scenepack.Strategies()
	if *strategy != "" {
		strategies = []scenepack.Strategy{scenepack.Strategy(*strategy)}
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SCENEPACK", utils.StatusMessage),
		utils.DecorateText("is encoding the scene...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()
	spinner.Start()

	scene, err := gen.Generate(*count, *stageWidth, *stageHeight)
	if err != nil {
		spinner.Stop()
		fatal("Failed to generate the scene: %v", err)
	}

	exports, err := scenepack.ExportStrategies(scene, strategies)

	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⚡ SCENEPACK", utils.StatusMessage),
		utils.DecorateText("is encoding the scene... ✔", utils.DefaultMessage))
	spinner.Stop()

	if err != nil {
		fatal("Failed to encode the scene: %v", err)
	}

	files := writePayloads(exports)
	printSummary(exports)

	renderer := &scenepack.Renderer{
		Background: "#ffffff",
		ShowLabels: *labels,
		BlendMode:  *blendMode,
	}
	if *snapshot != "" {
		writeSnapshot(renderer, scene)
	}
	if *svgOut != "" {
		writeVector(renderer, scene)
	}
	if *report {
		writeReport(scene, exports, files)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// writePayloads saves every export, either to the output directory or,
// for a single strategy, to stdout. It returns the written file names
// keyed by strategy.
func writePayloads(exports []scenepack.Export) map[scenepack.Strategy]string {
	files := make(map[scenepack.Strategy]string)

	if *output == pipeName {
		if len(exports) != 1 {
			fatal("Failed to save the payloads: %v",
				errors.New("writing to stdout needs a single -strategy"))
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fatal("Failed to save the payloads: %v",
				errors.New("`-` should be used with a pipe for stdout"))
		}
		if _, err := os.Stdout.Write(exports[0].Data); err != nil {
			fatal("Failed to save the payloads: %v", err)
		}
		return files
	}

	if _, err := os.Stat(*output); err != nil {
		if err := os.Mkdir(*output, 0755); err != nil {
			fatal("Unable to create the output directory: %v", err)
		}
	}

	for _, exp := range exports {
		fname := fmt.Sprintf("scene.%s.json", exp.Strategy)
		path := filepath.Join(*output, fname)
		if err := os.WriteFile(path, exp.Data, 0644); err != nil {
			fatal("Failed to save the payload: %v", err)
		}
		files[exp.Strategy] = fname
	}
	return files
}

// printSummary displays the payload sizes, with the savings measured
// against the regular baseline when it took part in the run.
func printSummary(exports []scenepack.Export) {
	baseline, hasBaseline := findBaseline(exports)

	fmt.Fprintln(os.Stderr)
	for _, exp := range exports {
		line := fmt.Sprintf("%s %10s",
			utils.DecorateText(fmt.Sprintf("%-12s", exp.Strategy), utils.StatusMessage),
			utils.FormatBytes(exp.Size),
		)
		if hasBaseline && exp.Strategy != baseline.Strategy {
			savings := exp.SavingsOver(baseline)
			msgType := utils.SuccessMessage
			if savings < 0 {
				msgType = utils.ErrorMessage
			}
			line += utils.DecorateText(fmt.Sprintf("  %+.2f%%", -savings), msgType)
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

// writeSnapshot renders the scene and saves it, together with the
// optional thumbnail next to it.
func writeSnapshot(r *scenepack.Renderer, scene scenepack.Collection) {
	img, err := r.Render(scene, *stageWidth, *stageHeight)
	if err != nil {
		fatal("Failed to render the snapshot: %v", err)
	}
	if err := scenepack.SaveImage(*snapshot, img); err != nil {
		fatal("Failed to save the snapshot: %v", err)
	}
	printStatus(*snapshot)

	if *thumb > 0 {
		path := filepath.Join(filepath.Dir(*snapshot), "thumb_"+filepath.Base(*snapshot))
		if err := scenepack.SaveImage(path, scenepack.Thumbnail(img, *thumb)); err != nil {
			fatal("Failed to save the thumbnail: %v", err)
		}
		printStatus(path)
	}
}

// writeVector saves the scene as an SVG document.
func writeVector(r *scenepack.Renderer, scene scenepack.Collection) {
	f, err := os.Create(*svgOut)
	if err != nil {
		fatal("Failed to save the vector snapshot: %v", err)
	}
	if err := r.WriteSVG(f, scene, *stageWidth, *stageHeight); err != nil {
		f.Close()
		fatal("Failed to save the vector snapshot: %v", err)
	}
	if err := f.Close(); err != nil {
		fatal("Failed to save the vector snapshot: %v", err)
	}
	printStatus(*svgOut)
}

// writeReport saves the manifest describing the run: one session id,
// the stage, and a checksummed entry per payload.
func writeReport(scene scenepack.Collection, exports []scenepack.Export, files map[scenepack.Strategy]string) {
	if *output == pipeName {
		return
	}
	baseline, hasBaseline := findBaseline(exports)

	entries := make([]reportEntry, len(exports))
	for i, exp := range exports {
		sum := sha256.Sum256(exp.Data)
		var savings float64
		if hasBaseline {
			savings = exp.SavingsOver(baseline)
		}
		entries[i] = reportEntry{
			Strategy: string(exp.Strategy),
			File:     files[exp.Strategy],
			Size:     exp.Size,
			Checksum: hex.EncodeToString(sum[:]),
			Savings:  savings,
			Elapsed:  exp.Elapsed.String(),
		}
	}

	rep := exportReport{
		Session: uuid.NewString(),
		Created: time.Now().UTC(),
		Seed:    *seed,
		Stage:   fmt.Sprintf("%dx%d", *stageWidth, *stageHeight),
		Count:   len(scene),
		Exports: entries,
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fatal("Failed to write the export report: %v", err)
	}
	path := filepath.Join(*output, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		fatal("Failed to write the export report: %v", err)
	}
	printStatus(path)
}

// findBaseline picks the regular export as the size reference.
func findBaseline(exports []scenepack.Export) (scenepack.Export, bool) {
	for _, exp := range exports {
		if exp.Strategy == scenepack.Regular {
			return exp, true
		}
	}
	return scenepack.Export{}, false
}

// printStatus displays the relevant information about the saved file.
func printStatus(fname string) {
	fmt.Fprintf(os.Stderr, "\nThe file has been saved as: %s %s\n",
		utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
		utils.DefaultColor,
	)
}

func fatal(msg string, err error) {
	log.Fatalf(
		utils.DecorateText(msg, utils.ErrorMessage),
		utils.DecorateText(err.Error(), utils.DefaultMessage),
	)
}
