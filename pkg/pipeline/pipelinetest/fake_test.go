package pipelinetest

import (
	"errors"
	"image"
	"testing"

	"github.com/kean/FetchImage/pkg/pipeline"
)

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 2, 2))
}

func TestFakePipeline_CachedImage(t *testing.T) {
	fake := NewFakePipeline()
	img := testImage()
	fake.SetCached("https://example.com/a.jpg", img)

	if got := fake.CachedImage(pipeline.NewRequest("https://example.com/a.jpg")); got != img {
		t.Error("expected cache hit")
	}
	if got := fake.CachedImage(pipeline.NewRequest("https://example.com/b.jpg")); got != nil {
		t.Error("expected cache miss")
	}
}

func TestFakeTask_DrivesCallbacks(t *testing.T) {
	fake := NewFakePipeline()

	var updates []pipeline.ProgressUpdate
	var completedWith image.Image
	task := fake.LoadImage(pipeline.NewRequest("u"),
		func(u pipeline.ProgressUpdate) { updates = append(updates, u) },
		func(img image.Image, err error) { completedWith = img },
	)

	ft := fake.LastTask()
	if ft == nil || pipeline.Task(ft) != task {
		t.Fatal("LastTask should return the started task")
	}

	ft.SendProgress(50, 100, nil)
	img := testImage()
	ft.Succeed(img)

	if len(updates) != 1 || updates[0].Completed != 50 || updates[0].Total != 100 {
		t.Errorf("unexpected progress updates: %+v", updates)
	}
	if completedWith != img {
		t.Error("expected completion with the image")
	}
}

func TestFakeTask_FiresAfterCancel(t *testing.T) {
	fake := NewFakePipeline()

	var gotErr error
	fake.LoadImage(pipeline.NewRequest("u"), nil, func(img image.Image, err error) { gotErr = err })

	task := fake.LastTask()
	task.Cancel()
	if !task.Cancelled() {
		t.Error("expected Cancelled after Cancel")
	}

	// Deliberately still fires, so controllers must gate their callbacks.
	task.Fail(errors.New("late failure"))
	if gotErr == nil {
		t.Error("expected callback to fire after cancel")
	}
}

func TestFakeTask_PriorityLog(t *testing.T) {
	fake := NewFakePipeline()
	fake.LoadImage(pipeline.Request{URL: "u", Priority: pipeline.PriorityHigh}, nil, nil)

	task := fake.LastTask()
	if task.Priority() != pipeline.PriorityHigh {
		t.Errorf("expected initial priority high, got %v", task.Priority())
	}

	task.SetPriority(pipeline.PriorityLow)
	task.SetPriority(pipeline.PriorityVeryHigh)

	changes := task.PriorityChanges()
	if len(changes) != 2 || changes[0] != pipeline.PriorityLow || changes[1] != pipeline.PriorityVeryHigh {
		t.Errorf("unexpected priority log: %v", changes)
	}
	if task.Priority() != pipeline.PriorityVeryHigh {
		t.Errorf("expected final priority very_high, got %v", task.Priority())
	}
}
