// Package api provides the REST API server for grids2midi
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/james-see/grids2midi/docs"
	"github.com/james-see/grids2midi/pkg/audio"
	"github.com/james-see/grids2midi/pkg/config"
	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/converter/devices"
	"github.com/james-see/grids2midi/pkg/oscillator"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/store"
)

// @title Grids2MIDI API
// @version 1.0
// @description API for generating Grids drum patterns and exporting them as MIDI, WAV and SysEx
// @host localhost:8080
// @BasePath /api/v1

const maxWAVSeconds = 10

// NewRouter builds the gin engine with every route registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/pattern", getPattern)
		v1.POST("/render/midi", renderMIDI)
		v1.POST("/render/wav", renderWAV)
		v1.GET("/euclidean", getEuclidean)
		v1.POST("/settings/syx", settingsSyx)
		v1.POST("/convert", handleConversion)
		v1.GET("/formats", listFormats)
		v1.GET("/devices", listDevices)
		v1.GET("/shapes", listShapes)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "grids2midi",
	})
}

// StepJSON is one step of a rendered pattern
type StepJSON struct {
	Index    int                      `json:"index"`
	Triggers [converter.NumLanes]bool `json:"triggers"`
	Accents  [converter.NumLanes]bool `json:"accents"`
}

// PatternJSON is a rendered pattern
type PatternJSON struct {
	Name  string     `json:"name"`
	Tempo float64    `json:"tempo"`
	Bars  int        `json:"bars"`
	Steps []StepJSON `json:"steps"`
	Grid  []string   `json:"grid"`
}

func patternJSON(p *converter.Pattern) (PatternJSON, error) {
	out := PatternJSON{Name: p.Name, Tempo: p.Tempo, Bars: p.Bars()}
	for i, s := range p.Steps {
		step := StepJSON{Index: i}
		for lane := 0; lane < converter.NumLanes; lane++ {
			step.Triggers[lane] = s.Trigger(lane)
			step.Accents[lane] = s.Accent(lane)
		}
		out.Steps = append(out.Steps, step)
	}

	grid, err := converter.NewSeqConverter().GenerateSeq(&converter.Pattern{Steps: p.Steps})
	if err != nil {
		return out, err
	}
	out.Grid = strings.Split(strings.TrimSpace(string(grid)), "\n")
	return out, nil
}

// patchFromQuery overlays query parameters on the default patch
func patchFromQuery(c *gin.Context) (*config.Patch, error) {
	p := config.Default()
	if v := c.Query("mode"); v != "" {
		p.Mode = v
	}
	for name, dst := range map[string]*uint8{
		"x":          &p.Drums.X,
		"y":          &p.Drums.Y,
		"randomness": &p.Drums.Randomness,
	} {
		if err := queryUint(c, name, 8, dst); err != nil {
			return nil, err
		}
	}
	if err := queryTriple(c, "density", &p.Density); err != nil {
		return nil, err
	}
	if err := queryTriple(c, "length", &p.Euclidean.Length); err != nil {
		return nil, err
	}
	if err := queryUint(c, "bpm", 16, &p.BPM); err != nil {
		return nil, err
	}
	if err := queryUint(c, "seed", 16, &p.Seed); err != nil {
		return nil, err
	}
	if v := c.Query("bars"); v != "" {
		bars, err := strconv.Atoi(v)
		if err != nil || bars > config.MaxBars {
			return nil, fmt.Errorf("invalid bars: %q", v)
		}
		p.Bars = bars
	}
	p.Swing = c.Query("swing") == "true"
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func queryUint[T uint8 | uint16](c *gin.Context, name string, bits int, dst *T) error {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, v)
	}
	*dst = T(n)
	return nil
}

func queryTriple(c *gin.Context, name string, dst *[3]uint8) error {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != len(dst) {
		return fmt.Errorf("invalid %s: want %d comma separated values", name, len(dst))
	}
	for i, s := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", name, s)
		}
		dst[i] = uint8(n)
	}
	return nil
}

// getPattern godoc
// @Summary Generate a pattern
// @Description Runs the pattern generator and returns the evaluated steps
// @Tags pattern
// @Produce json
// @Param mode query string false "drums or euclidean"
// @Param x query int false "Map X (0-255)"
// @Param y query int false "Map Y (0-255)"
// @Param randomness query int false "Randomness (0-255)"
// @Param density query string false "Densities as a,b,c"
// @Param length query string false "Euclidean lengths as a,b,c"
// @Param bpm query int false "Tempo"
// @Param bars query int false "Bars to render"
// @Success 200 {object} PatternJSON
// @Failure 400 {object} map[string]string
// @Router /pattern [get]
func getPattern(c *gin.Context) {
	p, err := patchFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := patternJSON(p.Render())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func bindPatch(c *gin.Context) (*config.Patch, error) {
	p := config.Default()
	if err := c.ShouldBindJSON(p); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func noteMap(c *gin.Context, param string, p *config.Patch) (converter.NoteMap, error) {
	id := c.DefaultQuery(param, "gm")
	if id == "custom" {
		return p.NoteMap(), nil
	}
	return devices.Lookup(id)
}

// renderMIDI godoc
// @Summary Render MIDI
// @Description Renders a patch to a Standard MIDI File
// @Tags render
// @Accept json
// @Produce audio/midi
// @Param device query string false "Note map (default: gm)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /render/midi [post]
func renderMIDI(c *gin.Context) {
	p, err := bindPatch(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	notes, err := noteMap(c, "device", p)
	if err != nil {
		badRequest(c, err)
		return
	}

	data, err := converter.NewMIDIConverter().GenerateMIDI(p.Render(), notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=pattern.mid")
	c.Data(http.StatusOK, "audio/midi", data)
}

// WAVRequest describes an oscillator render
type WAVRequest struct {
	config.Oscillator
	Seconds float64 `json:"seconds"`
}

// renderWAV godoc
// @Summary Render WAV
// @Description Renders the digital oscillator to a WAV file
// @Tags render
// @Accept json
// @Produce audio/wav
// @Param request body WAVRequest true "Oscillator settings"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /render/wav [post]
func renderWAV(c *gin.Context) {
	req := WAVRequest{Oscillator: config.Default().Oscillator, Seconds: 1}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Seconds <= 0 || req.Seconds > maxWAVSeconds {
		badRequest(c, fmt.Errorf("seconds must be in (0, %d]", maxWAVSeconds))
		return
	}

	p := config.Default()
	p.Oscillator = req.Oscillator
	if err := p.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	osc, err := p.Voice()
	if err != nil {
		badRequest(c, err)
		return
	}

	data, err := audio.RenderWAV(osc, req.Seconds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=oscillator.wav")
	c.Data(http.StatusOK, "audio/wav", data)
}

// getEuclidean godoc
// @Summary Euclidean pattern
// @Description Returns the euclidean pattern for a length and density level
// @Tags pattern
// @Produce json
// @Param length query int true "Length (1-32)"
// @Param density query int true "Density level (0-31)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /euclidean [get]
func getEuclidean(c *gin.Context) {
	length, err := strconv.Atoi(c.Query("length"))
	if err != nil || length < 1 || length > pattern.StepsPerPattern {
		badRequest(c, fmt.Errorf("length must be in 1..%d", pattern.StepsPerPattern))
		return
	}
	density, err := strconv.Atoi(c.Query("density"))
	if err != nil || density < 0 || density > 31 {
		badRequest(c, fmt.Errorf("density must be in 0..31"))
		return
	}

	word := pattern.EuclideanPattern(uint8(length), uint8(density))
	var bits strings.Builder
	for i := 0; i < length; i++ {
		if word&(1<<uint(i)) != 0 {
			bits.WriteByte(converter.SeqHit)
		} else {
			bits.WriteByte(converter.SeqRest)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"length":  length,
		"density": density,
		"hits":    pattern.EuclideanHits(uint8(length), uint8(density)),
		"pattern": word,
		"bits":    bits.String(),
	})
}

// settingsSyx godoc
// @Summary Settings SysEx dump
// @Description Encodes the settings of a patch as a SysEx dump
// @Tags settings
// @Accept json
// @Produce application/octet-stream
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /settings/syx [post]
func settingsSyx(c *gin.Context) {
	p, err := bindPatch(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	img := store.Capture(p.Engine().Generator())
	c.Header("Content-Disposition", "attachment; filename=grids.syx")
	c.Data(http.StatusOK, "application/octet-stream", converter.NewSyxConverter().GenerateSyx(img))
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns a list of supported file formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     []converter.Format{converter.FormatMIDI, converter.FormatSeq, converter.FormatSyx, converter.FormatImage},
		"conversions": converter.GetSupportedConversions(),
	})
}

// listDevices godoc
// @Summary List supported devices
// @Description Returns the available drum note maps
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /devices [get]
func listDevices(c *gin.Context) {
	var out []gin.H
	for _, d := range devices.All() {
		out = append(out, gin.H{
			"id":      d.ID(),
			"name":    d.Name(),
			"channel": d.Channel() + 1,
			"notes":   d.Notes(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"devices": out})
}

// listShapes godoc
// @Summary List oscillator shapes
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /shapes [get]
func listShapes(c *gin.Context) {
	var names []string
	for _, s := range oscillator.Shapes() {
		names = append(names, s.String())
	}
	c.JSON(http.StatusOK, gin.H{"shapes": names})
}

// handleConversion godoc
// @Summary Convert a file
// @Description Upload a file and receive it converted to another format
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "File to convert"
// @Param to query string true "Target format (midi, seq, syx, image)"
// @Param device query string false "Target note map (default: gm)"
// @Param source query string false "Source note map (default: device)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /convert [post]
func handleConversion(c *gin.Context) {
	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	from := converter.DetectFormat(header.Filename)
	if from == converter.FormatUnknown {
		from = converter.DetectFormatFromContent(data)
	}
	to := converter.Format(c.Query("to"))

	device, err := devices.Lookup(c.DefaultQuery("device", "gm"))
	if err != nil {
		badRequest(c, err)
		return
	}
	conv := converter.New(device)
	if id := c.Query("source"); id != "" {
		source, err := devices.Lookup(id)
		if err != nil {
			badRequest(c, err)
			return
		}
		conv.SetSource(source)
	}

	result, err := conv.Convert(data, from, to)
	if err != nil {
		badRequest(c, err)
		return
	}

	outputName := strings.TrimSuffix(header.Filename, extOf(header.Filename))
	if outputName == "" {
		outputName = "converted"
	}
	outputName += outputExt(to)

	contentType := "application/octet-stream"
	switch to {
	case converter.FormatMIDI:
		contentType = "audio/midi"
	case converter.FormatSeq:
		contentType = "text/plain; charset=utf-8"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.DataFromReader(http.StatusOK, int64(len(result)), contentType, bytes.NewReader(result), nil)
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func outputExt(f converter.Format) string {
	switch f {
	case converter.FormatMIDI:
		return ".mid"
	case converter.FormatSeq:
		return ".seq"
	case converter.FormatSyx:
		return ".syx"
	default:
		return ".bin"
	}
}
