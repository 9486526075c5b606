// Command catalogcheck loads the configured question source and reports
// what the skill would serve, flagging rows it could never grade.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/catalog"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	migrate := flag.Bool("migrate", false, "create the topics/questions tables first (mysql source only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		logger.Fatal(err, "load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src, err := catalog.SourceFromConfig(ctx)
	if err != nil {
		logger.Fatal(err, "open source")
	}
	if *migrate {
		sql, ok := src.(catalog.SQLSource)
		if !ok {
			logger.Fatal(nil, "-migrate needs catalog.source=%s", config.SourceMySQL)
		}
		if err := sql.Migrate(ctx); err != nil {
			logger.Fatal(err, "migrate")
		}
		fmt.Println("tables ready")
	}

	c, err := catalog.Load(ctx, src)
	if err != nil {
		logger.Fatal(err, "load catalog")
	}

	problems := report(c)
	fmt.Printf("%d topics, %d questions, %d problems\n", len(c.Topics()), c.Size(), problems)
	if problems > 0 {
		os.Exit(1)
	}
}

// report prints per-topic counts and every question whose answer key
// normalizes to nothing. It returns the number of such questions plus
// empty topics.
func report(c *quiz.Catalog) int {
	problems := 0
	for _, topic := range c.Topics() {
		qs := c.Questions(topic)
		images := 0
		for _, q := range qs {
			if q.HasImage() {
				images++
			}
		}
		fmt.Printf("%-40s %4d questions %3d with images\n", topic, len(qs), images)
		if len(qs) == 0 {
			fmt.Println("  ! no questions")
			problems++
		}
		for i, q := range qs {
			if len(quiz.NormalizeCorrectLabels(q.CorrectLabels)) == 0 {
				fmt.Printf("  ! #%d %q: no usable correct label in %q\n", i+1, q.Text, q.CorrectLabels)
				problems++
			}
		}
	}
	return problems
}
