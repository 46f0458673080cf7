//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ankek/terraform-provider-astrochart/internal/provider"
	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
)

func main() {
	fmt.Println("Generating sample charts...\n")

	const testdata = "internal/provider/testdata/"
	samples := []provider.ChartConfig{
		{ChartType: string(renderer.ChartNatal), SubjectPath: testdata + "john.yaml"},
		{ChartType: string(renderer.ChartExternalNatal), SubjectPath: testdata + "john.yaml", Theme: "dark"},
		{ChartType: string(renderer.ChartTransit), SubjectPath: testdata + "john.yaml", SecondSubjectPath: testdata + "yoko.yaml", AspectGridType: renderer.AspectGridTable},
		{ChartType: string(renderer.ChartSynastry), SubjectPath: testdata + "john.yaml", SecondSubjectPath: testdata + "yoko.yaml", Language: "IT"},
		{ChartType: string(renderer.ChartComposite), SubjectPath: testdata + "composite.yaml", Theme: "light"},
	}

	generator := provider.NewChartGenerator(nil)
	for _, cfg := range samples {
		cfg.AspectsPath = testdata + "aspects.yaml"
		cfg.OutputDirectory = "samples"
		cfg.Variants = renderer.Variants()
		cfg.Format = provider.FormatPNG

		result, err := generator.Generate(context.Background(), cfg)
		if err != nil {
			fmt.Printf("Error rendering %s chart: %v\n", cfg.ChartType, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d files, %d aspects\n", result.Title, len(result.Files), result.AspectCount)
	}

	fmt.Println("\n✅ SUCCESS! Charts generated in: samples/")
}
