package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rajanimaurya/internship-recommender/internal/client/models"
	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/filex"
)

func (a *App) Internships(ctx context.Context) {
	list, err := a.apiClient.Internships(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	for _, in := range list {
		fmt.Printf("[%d] %s — %s (%s, %s)\n", in.ID, in.Title, in.Department, in.Location, in.Duration)
	}
}

func (a *App) Analyze(ctx context.Context) {
	result, err := a.analyzer.Analyze(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoFileSelected) {
			log.Printf("No file selected. Use 'pick', 'drop' or the camera first.")
			return
		}
		log.Printf("Analysis unsuccessful: %s", err.Error())
		return
	}
	printAnalysis(result)
}

func (a *App) Recommend(ctx context.Context) {
	result, err := a.analyzer.Recommend(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("No resume on file. Run 'analyze' first.")
			return
		}
		log.Println(err.Error())
		return
	}
	printAnalysis(result)
}

func (a *App) Export(ctx context.Context, args []string) {
	data, err := a.apiClient.Export(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		dir, err := filex.EnsureSubDir("exports")
		if err != nil {
			log.Println(err.Error())
			return
		}
		path = filepath.Join(dir, "recommendations.xlsx")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Saved %s (%d bytes)\n", path, len(data))
}

func (a *App) Apply(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: apply <internship id> [match score]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: apply <internship id> [match score]")
		return
	}
	score := 0
	if len(args) > 1 {
		score, _ = strconv.Atoi(args[1])
	}

	if err := a.apiClient.Allocate(ctx, id, score); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("Internship %d not found", id)
			return
		}
		log.Println(err.Error())
		return
	}
	fmt.Println("Application recorded")
}

func (a *App) History(ctx context.Context) {
	records, err := a.analyzer.History(ctx, 20)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(records) == 0 {
		fmt.Println("No analyses yet")
		return
	}
	for _, r := range records {
		fmt.Printf("[%d] %s  %s  top: %s (%d)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.FileName, r.TopTitle, r.TopScore)
	}
}

func printAnalysis(result *models.AnalysisResult) {
	fmt.Println(result.Summary)
	if len(result.Skills) > 0 {
		fmt.Printf("Skills: %v\n", result.Skills)
	}
	for _, o := range result.Opportunities {
		marker := " "
		if o.Recommended {
			marker = "*"
		}
		fmt.Printf("%s [%d] %s — %s (score %d)\n", marker, o.ID, o.Title, o.Organization, o.MatchScore)
		if o.Explanation != "" {
			fmt.Printf("    %s\n", o.Explanation)
		}
	}
}
