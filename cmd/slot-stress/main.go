package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/slotvec/slot"
	"github.com/spf13/pflag"
)

// record is a plausibly sized payload for churn testing.
type record struct {
	ID      uint64
	Payload [4]float64
	Label   string
}

func main() {
	duration := pflag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	recordCount := pflag.Int("records", 10000, "The number of live records to keep in the store.")
	retiredPool := pflag.Int("retired", 1024, "The number of stale handles to keep around for miss checks.")
	gcPauseMetrics := pflag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	pflag.Parse()

	log.Println("Starting slot store stress test...")

	store := slot.WithCapacity[record](*recordCount)

	// 1. Populate the store and remember every live handle
	log.Printf("Populating store with %d records...\n", *recordCount)
	live := make([]slot.Handle, 0, *recordCount)
	for i := 0; i < *recordCount; i++ {
		live = append(live, store.Insert(newRecord(uint64(i))))
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Records:        *recordCount,
		RetiredHandles: *retiredPool,
		GCPauseMetrics: *gcPauseMetrics,
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	// 2. Run the churn loop: every batch removes a random record, inserts a
	// replacement, looks up a live handle and a retired one. A retired handle
	// that still resolves is a correctness violation.
	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	retired := make([]slot.Handle, 0, *retiredPool)
	nextID := uint64(*recordCount)
	var totalBatches int64

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			batchStart := time.Now()

			// Remove a random live record
			victim := rand.Intn(len(live))
			h := live[victim]
			if _, ok := store.Remove(h); !ok {
				report.Violations++
			}
			retired = append(retired, h)
			if len(retired) > *retiredPool {
				retired = retired[1:]
			}

			// Insert a replacement
			live[victim] = store.Insert(newRecord(nextID))
			nextID++

			// A live handle must hit
			if store.Get(live[rand.Intn(len(live))]) == nil {
				report.Violations++
			}

			// A retired handle must miss
			if store.Get(retired[rand.Intn(len(retired))]) != nil {
				report.Violations++
			}

			report.BatchTime.Samples = append(report.BatchTime.Samples, time.Since(batchStart))
			totalBatches++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalBatches = totalBatches
	report.FinalLen = store.Len()
	report.BatchTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Churn finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Violations > 0 {
		log.Fatalf("Stress test FAILED with %d handle violations.", report.Violations)
	}
	log.Println("Stress test complete.")
}

func newRecord(id uint64) record {
	return record{
		ID:      id,
		Payload: [4]float64{rand.Float64(), rand.Float64(), rand.Float64(), rand.Float64()},
		Label:   fmt.Sprintf("record-%d", id),
	}
}
