package main

import (
	"context"
	"flag"
	"log"
	"math"
	"time"

	"github.com/yyyoichi/audiomark"
	"github.com/yyyoichi/audiomark/internal/quality"
	"github.com/yyyoichi/audiomark/internal/wavio"
	"github.com/yyyoichi/audiomark/key"
	"github.com/yyyoichi/audiomark/mark"
)

type TestParams struct {
	SampleRate int
	Duration   float64
	Depth      float64
	ECC        string

	// meta
	Samples       int
	SamplesPerBit int
}

func main() {
	// Parse command-line arguments
	message := flag.String("m", "TEST_MARK", "message to hide")
	bitDepth := flag.Int("bits", 16, "bit depth the stego signal is re-quantized to")
	flag.Parse()

	ctx := context.Background()

	sampleRates := []int{8000, 22050, 44100}
	durations := []float64{0.05, 0.25, 1}
	depths := []float64{0.00005, 0.0005, 0.005}
	eccs := []string{mark.NameNone, mark.NameGolay}

	log.Printf("Starting quality evaluation of %q\n", *message)
	log.Printf("Total test cases: %d (sample rates) x %d (durations) x %d (depths) x %d (ecc) = %d\n",
		len(sampleRates), len(durations), len(depths), len(eccs),
		len(sampleRates)*len(durations)*len(depths)*len(eccs))

	successCount := 0
	totalTests := 0

	for _, rate := range sampleRates {
		for _, duration := range durations {
			tone, err := wavio.Sine(duration, 1, rate)
			if err != nil {
				log.Printf("  Error generating tone: %v\n", err)
				continue
			}
			original := quantize(tone.Amplitudes, *bitDepth)
			batch := audiomark.NewBatch(original)

			for _, depth := range depths {
				for _, ecc := range eccs {
					params := TestParams{
						SampleRate: rate,
						Duration:   duration,
						Depth:      depth,
						ECC:        ecc,
						Samples:    batch.Len(),
					}
					totalTests++
					if testWatermark(ctx, batch, original, []byte(*message), *bitDepth, params) {
						successCount++
					}
				}
			}
		}
	}

	log.Printf("\n=== Results ===\n")
	log.Printf("Total tests: %d\n", totalTests)
	log.Printf("Successful: %d (%.2f%%)\n", successCount, float64(successCount)/float64(totalTests)*100)
	log.Printf("Failed: %d (%.2f%%)\n", totalTests-successCount, float64(totalTests-successCount)/float64(totalTests)*100)
}

// quantize truncates amps to the grid of a signed PCM bit depth.
func quantize(amps []float64, bitDepth int) []float64 {
	scale := float64(int64(1)<<(bitDepth-1) - 1)
	out := make([]float64, len(amps))
	for i, v := range amps {
		out[i] = math.Trunc(math.Max(-1, math.Min(1, v))*scale) / scale
	}
	return out
}

func testWatermark(ctx context.Context, batch *audiomark.Batch, original []float64, message []byte, bitDepth int, params TestParams) bool {
	ecc, err := mark.ByName(params.ECC, mark.DefaultShuffleSeed)
	if err != nil {
		log.Printf("    [FAIL] ECC=%s - ECC error: %v\n", params.ECC, err)
		return false
	}
	opts := []audiomark.Option{audiomark.WithDepth(params.Depth)}

	start := time.Now()

	bitsPerChar, err := audiomark.BitsPerChar(message)
	if err != nil {
		log.Printf("    [FAIL] Message error: %v\n", err)
		return false
	}
	payload := mark.New(message, ecc).Payload()
	p := audiomark.Params{BitsPerChar: bitsPerChar, MessageLen: len(payload)}
	params.SamplesPerBit, err = audiomark.SamplesPerBit(batch.Len(), p)
	if err != nil {
		log.Printf("    [SKIP] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d - %v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, err)
		return false
	}
	k := key.NewGenerator().Generate(params.SamplesPerBit)

	// Embed
	stego, err := batch.Embed(ctx, payload, p, k, opts...)
	if err != nil {
		log.Printf("    [FAIL] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d - Embed error: %v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, err)
		return false
	}

	// Re-quantize as writing a PCM file would
	stego = quantize(stego, bitDepth)

	// Extract
	extracted, err := batch.Extract(ctx, stego, p, k, opts...)
	if err != nil {
		log.Printf("    [FAIL] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d - Extract error: %v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, err)
		return false
	}
	decoded, err := mark.Decode(extracted, len(message), ecc)
	if err != nil {
		log.Printf("    [FAIL] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d - Decode error: %v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, err)
		return false
	}

	// Verify
	accuracy := quality.BitAccuracy(message, decoded) * 100
	var psnr float64
	if report, err := quality.Compare(original, stego, 0); err == nil {
		psnr = report.PSNR
	}
	duration := time.Since(start)

	if accuracy == 100.0 {
		log.Printf("    [OK] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d SamplesPerBit=%d - Accuracy=%.1f%% PSNR=%.1fdB Time=%v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, params.SamplesPerBit, accuracy, psnr, duration)
		return true
	} else {
		log.Printf("    [FAIL] Rate=%d Duration=%.2fs Depth=%g ECC=%s Samples=%d SamplesPerBit=%d - Accuracy=%.1f%% PSNR=%.1fdB Time=%v\n",
			params.SampleRate, params.Duration, params.Depth, params.ECC, params.Samples, params.SamplesPerBit, accuracy, psnr, duration)
		return false
	}
}
