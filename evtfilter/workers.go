package main

import (
	"fmt"
	"io"
	"sync"

	evtfilter "github.com/next-exp/evtfilter_go/pkg"
	"golang.org/x/exp/slices"
)

type WorkerResult struct {
	EventID  uint32
	Decision evtfilter.Decision
	Err      error
}

type Summary struct {
	Processed  int
	Accepted   int
	Failed     int
	RejectedBy map[string]int
}

func worker(id int, selector *evtfilter.Selector, jobs <-chan evtfilter.Event, results chan<- WorkerResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for event := range jobs {
		results <- selectEvent(id, selector, event)
	}
}

func selectEvent(id int, selector *evtfilter.Selector, event evtfilter.Event) (result WorkerResult) {
	defer func() {
		if r := recover(); r != nil {
			result = WorkerResult{
				EventID: event.EventID,
				Err:     fmt.Errorf("worker %d recovered from panic on event %d: %v", id, event.EventID, r),
			}
		}
	}()
	decision, err := selector.Select(event)
	return WorkerResult{EventID: event.EventID, Decision: decision, Err: err}
}

func sendEventsToWorkers(reader *evtfilter.EventReader, jobs chan<- evtfilter.Event) error {
	defer close(jobs)
	for {
		event, err := reader.NextEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		jobs <- event
	}
}

func processWorkerResults(results <-chan WorkerResult) Summary {
	summary := Summary{RejectedBy: make(map[string]int)}
	for result := range results {
		summary.Processed++
		switch {
		case result.Err != nil:
			summary.Failed++
			logger.Error(result.Err.Error())
		case result.Decision.Accepted:
			summary.Accepted++
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Event %d accepted, t1 %v t2 %v", result.EventID, result.Decision.T1.Time, result.Decision.T2.Time)
				logger.Info(message, "workers")
			}
		default:
			summary.RejectedBy[result.Decision.RejectedBy]++
		}
	}
	return summary
}

// runSelection fans the events out to numWorkers workers and collects
// their decisions.
func runSelection(reader *evtfilter.EventReader, selector *evtfilter.Selector, numWorkers int) (Summary, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	jobs := make(chan evtfilter.Event, numWorkers)
	results := make(chan WorkerResult, 1000)

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go worker(w, selector, jobs, results, &wg)
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- sendEventsToWorkers(reader, jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	summary := processWorkerResults(results)
	return summary, <-readErr
}

func printSummary(summary Summary, logger Logger) {
	logger.Info(fmt.Sprintf("Events processed: %d", summary.Processed), "summary")
	logger.Info(fmt.Sprintf("Events accepted: %d", summary.Accepted), "summary")
	logger.Info(fmt.Sprintf("Events failed: %d", summary.Failed), "summary")
	filters := make([]string, 0, len(summary.RejectedBy))
	for name := range summary.RejectedBy {
		filters = append(filters, name)
	}
	slices.Sort(filters)
	for _, name := range filters {
		logger.Info(fmt.Sprintf("Rejected by %s: %d", name, summary.RejectedBy[name]), "summary")
	}
}
