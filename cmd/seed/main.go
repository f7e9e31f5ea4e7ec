package main

import (
	"context"
	"os"

	"github.com/shopspring/decimal"

	"learnhub/internal/config"
	"learnhub/internal/db"
	"learnhub/internal/logger"
	"learnhub/internal/model"
	"learnhub/internal/repository"
)

// Seeds the catalog with sample chapters and courses, plus a couple of
// inline content items. Safe to run repeatedly: an already-populated
// catalog is left alone.
func main() {
	cfg := config.Load()
	log := logger.New(true)

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.Chapter{}, &model.Course{}, &model.ContentItem{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	catalogRepo := repository.NewCatalogRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)
	ctx := context.Background()

	existing, err := catalogRepo.ListChapters(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list chapters")
	}
	if len(existing) > 0 {
		log.Info().Int("chapters", len(existing)).Msg("catalog already seeded, nothing to do")
		os.Exit(0)
	}

	chapters := []model.Chapter{
		{Name: "The Living World", Subject: "Biology"},
		{Name: "Biological Classification", Subject: "Biology"},
		{Name: "Plant Kingdom", Subject: "Biology"},
		{Name: "Animal Kingdom", Subject: "Biology"},
	}
	for i := range chapters {
		if err := catalogRepo.CreateChapter(ctx, &chapters[i]); err != nil {
			log.Fatal().Err(err).Str("chapter", chapters[i].Name).Msg("create chapter")
		}
	}

	courses := []model.Course{
		{Title: "Biology Foundation", Description: "Full NCERT biology syllabus with chapter tests.", Price: decimal.NewFromInt(0)},
		{Title: "Premium Test Series", Description: "Weekly full-syllabus mock tests with solutions.", Price: decimal.RequireFromString("499.00"), IsPremium: true},
	}
	for i := range courses {
		if err := catalogRepo.CreateCourse(ctx, &courses[i]); err != nil {
			log.Fatal().Err(err).Str("course", courses[i].Title).Msg("create course")
		}
	}

	items := []model.ContentItem{
		{Title: "Cell Structure Notes", Type: "note", Content: "Introductory notes on cell structure.", ChapterID: chapters[0].ID},
		{Title: "Classification Mock Test", Type: "test", Content: "20 questions on biological classification.", ChapterID: chapters[1].ID, IsPremium: true},
	}
	for i := range items {
		if err := contentRepo.Create(ctx, &items[i]); err != nil {
			log.Fatal().Err(err).Str("title", items[i].Title).Msg("create content")
		}
	}

	log.Info().
		Int("chapters", len(chapters)).
		Int("courses", len(courses)).
		Int("content", len(items)).
		Msg("seed completed")
}
