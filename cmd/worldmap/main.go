package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"wildbound/internal/domain/world"
	"wildbound/pkg/logger"
)

func main() {
	var (
		width, height int
		seed          float64
		noise         string
		pngPath       string
		scale         int
		maxCols       int
	)
	flag.IntVar(&width, "width", world.DefaultWidth, "world width in cells")
	flag.IntVar(&height, "height", world.DefaultHeight, "world height in cells")
	flag.Float64Var(&seed, "seed", 0.42, "world seed")
	flag.StringVar(&noise, "noise", string(world.NoiseValue), "noise kind: value, perlin or simplex")
	flag.StringVar(&pngPath, "png", "", "also write a PNG to this path")
	flag.IntVar(&scale, "scale", 6, "PNG pixels per cell")
	flag.IntVar(&maxCols, "cols", 80, "maximum terminal columns per row, 0 for no limit")
	flag.Parse()

	logger.Init()
	log := logger.L().WithField("component", "worldmap")

	kind, err := world.ParseNoiseKind(noise)
	if err != nil {
		log.WithError(err).Fatal("Invalid noise kind")
	}
	w, err := world.NewGenerator(world.GeneratorConfig{Noise: kind}).Generate(width, height, seed)
	if err != nil {
		log.WithError(err).Fatal("World generation failed")
	}

	fmt.Print(renderTerminal(w, maxCols))
	fmt.Print(renderLegend(w))

	if pngPath != "" {
		if err := renderPNG(w, scale, pngPath); err != nil {
			log.WithError(err).Fatal("PNG export failed")
		}
		log.WithFields(logrus.Fields{"path": pngPath, "scale": scale}).Info("World PNG written")
	}
}
