package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crystaledu/timetable/internal/config"
	"github.com/crystaledu/timetable/internal/csvio"
	"github.com/crystaledu/timetable/internal/timetable"
)

const (
	uploadDir    = "db/uploads"
	generatedDir = "db/generated"
)

type server struct {
	cfg *config.Config
	log *zap.Logger
}

func newServer(cfg *config.Config, log *zap.Logger) *server {
	return &server{cfg: cfg, log: log}
}

func (s *server) handleListSchedules(ctx *gin.Context) {
	entries, err := os.ReadDir(generatedDir)
	if err != nil {
		if os.IsNotExist(err) {
			ctx.JSON(http.StatusOK, gin.H{"scheduleIds": []string{}})
			return
		}
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ids := []string{}
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"scheduleIds": ids})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	id := ctx.Param("id")
	content, err := os.ReadFile(filepath.Join(generatedDir, id, "timetable.json"))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.Data(http.StatusOK, "application/json", content)
}

func (s *server) handleGenerateSchedule(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	if form.File["courses"] == nil || form.File["rooms"] == nil {
		ctx.String(http.StatusBadRequest, "missing file(s): courses? rooms?")
		return
	}

	id := uuid.NewString()
	coursesPath := filepath.Join(uploadDir, id+"-courses.csv")
	roomsPath := filepath.Join(uploadDir, id+"-rooms.csv")
	if err := ctx.SaveUploadedFile(form.File["courses"][0], coursesPath); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	if err := ctx.SaveUploadedFile(form.File["rooms"][0], roomsPath); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	courses, err := csvio.LoadCourses(coursesPath, ',')
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	rooms, err := csvio.LoadRooms(roomsPath, ',')
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	catalog, err := timetable.NewCatalog(s.cfg)
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	opts := []timetable.Option{timetable.WithLogger(s.log)}
	if raw := ctx.PostForm("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.String(http.StatusBadRequest, "seed must be an integer")
			return
		}
		opts = append(opts, timetable.WithSeed(seed))
	} else if s.cfg.RandomSeed != 0 {
		opts = append(opts, timetable.WithSeed(s.cfg.RandomSeed))
	}

	sched := timetable.New(catalog, rooms, opts...)
	result := sched.GenerateAll(courses)
	valid, report := timetable.Validate(catalog, courses, result, sched.Ledger())

	outDir := filepath.Join(generatedDir, id)
	if _, err := csvio.ExportTimetable(result, outDir); err != nil {
		s.log.Error("export failed", zap.String("id", id), zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(filepath.Join(outDir, "timetable.json"), payload, 0o644); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":     id,
		"valid":  valid,
		"report": report,
	})
}
