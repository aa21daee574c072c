package tracker

import "github.com/stsysd/reelbook/model"

// ComputeStats derives the global completion figures from a project list.
func ComputeStats(projects []model.Project) model.Stats {
	completed := 0
	for i := range projects {
		if projects[i].Completed {
			completed++
		}
	}
	return model.Stats{
		TotalProjects:       len(projects),
		CompletedProjects:   completed,
		CompletedPercentage: model.Percent(completed, len(projects)),
	}
}
