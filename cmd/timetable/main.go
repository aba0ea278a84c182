package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/crystaledu/timetable/internal/config"
	"github.com/crystaledu/timetable/internal/csvio"
	"github.com/crystaledu/timetable/internal/timetable"
	"github.com/crystaledu/timetable/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration")
	coursesPath := flag.String("courses", "", "courses CSV (overrides config)")
	roomsPath := flag.String("rooms", "", "rooms CSV (overrides config)")
	exportDir := flag.String("out", "", "export directory (overrides config)")
	seed := flag.Int64("seed", 0, "random seed, 0 seeds from the clock (overrides config)")
	printAll := flag.Bool("print", false, "print every cohort's timetable to stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *coursesPath != "" {
		cfg.CoursesFile = *coursesPath
	}
	if *roomsPath != "" {
		cfg.RoomsFile = *roomsPath
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *seed != 0 {
		cfg.RandomSeed = *seed
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	courses, err := csvio.LoadCourses(cfg.CoursesFile, ',')
	if err != nil {
		log.Fatal("load courses", zap.Error(err))
	}
	rooms, err := csvio.LoadRooms(cfg.RoomsFile, ',')
	if err != nil {
		log.Fatal("load rooms", zap.Error(err))
	}
	catalog, err := timetable.NewCatalog(cfg)
	if err != nil {
		log.Fatal("build slot catalog", zap.Error(err))
	}

	opts := []timetable.Option{timetable.WithLogger(log)}
	if cfg.RandomSeed != 0 {
		opts = append(opts, timetable.WithSeed(cfg.RandomSeed))
	}
	sched := timetable.New(catalog, rooms, opts...)

	start := time.Now()
	result := sched.GenerateAll(courses)
	log.Info("generation finished",
		zap.Int("courses", len(courses)),
		zap.Int("rooms", len(rooms)),
		zap.Duration("took", time.Since(start)),
	)

	valid, report := timetable.Validate(catalog, courses, result, sched.Ledger())
	if valid {
		fmt.Println("Passed all tests")
	} else {
		fmt.Println("Invalid schedule:")
	}
	fmt.Print(report)

	if *printAll {
		branches := make([]string, 0, len(result))
		for b := range result {
			branches = append(branches, b)
		}
		sort.Strings(branches)
		for _, b := range branches {
			sems := make([]string, 0, len(result[b]))
			for sem := range result[b] {
				sems = append(sems, sem)
			}
			sort.Strings(sems)
			for _, sem := range sems {
				csvio.PrintCohort(os.Stdout, b, sem, result[b][sem])
			}
		}
	}

	paths, err := csvio.ExportTimetable(result, cfg.ExportDir)
	if err != nil {
		log.Fatal("export timetable", zap.Error(err))
	}
	log.Info("exported", zap.Int("files", len(paths)), zap.String("dir", cfg.ExportDir))
}
