package main

import (
	"context"
	"linkguard/internal/classifier"
	"linkguard/internal/config"
	"linkguard/internal/email"
	"linkguard/pkg/logger"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// trainCommand groups the model training subcommands.
func trainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Trains the phishing or email models",
	}

	cmd.AddCommand(trainPhishingCommand(cfg), trainEmailCommand(cfg))

	return cmd
}

func trainPhishingCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishing",
		Short: "Trains the phishing URL classifier from a labelled CSV dataset",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dataset, _ := cmd.Flags().GetString("dataset")
			out, _ := cmd.Flags().GetString("out")
			epochs, _ := cmd.Flags().GetInt("epochs")
			if dataset == "" {
				logger.Fatal(ctx, "no dataset given, set --dataset or phishing.datasetPath")
			}

			artifact, report, err := classifier.TrainFile(ctx, dataset, classifier.TrainOptions{Epochs: epochs})
			if err != nil {
				logger.Fatal(ctx, "could not train phishing classifier", zap.Error(err))
			}

			fields := []zap.Field{
				zap.Int("train_samples", report.TrainSamples),
				zap.Int("test_samples", report.TestSamples),
				zap.Float64("accuracy", report.Accuracy),
			}
			for label, c := range report.Classes {
				fields = append(fields, zap.Dict(string(label),
					zap.Float64("precision", c.Precision),
					zap.Float64("recall", c.Recall),
					zap.Int("support", c.Support)))
			}
			logger.Info(ctx, "phishing classifier trained", fields...)

			if err := artifact.Save(out); err != nil {
				logger.Fatal(ctx, "could not save phishing classifier", zap.Error(err))
			}
			logger.Info(ctx, "phishing classifier saved", zap.String("dir", out))
		},
	}

	cmd.Flags().String("dataset", cfg.Phishing.DatasetPath, "Labelled CSV dataset path")
	cmd.Flags().String("out", cfg.Phishing.ModelDir, "Directory the model files are written to")
	cmd.Flags().Int("epochs", 0, "SVM training epochs, 0 uses the default")

	return cmd
}

func trainEmailCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Trains the email categorizer from a JSON file of labelled emails",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dataset, _ := cmd.Flags().GetString("dataset")
			out, _ := cmd.Flags().GetString("out")
			if dataset == "" {
				logger.Fatal(ctx, "no dataset given, set --dataset or email.datasetPath")
			}

			examples, err := email.ReadExamplesFile(dataset)
			if err != nil {
				logger.Fatal(ctx, "could not read email dataset", zap.Error(err))
			}

			model, report, err := email.Train(ctx, examples, email.TrainOptions{})
			if err != nil {
				logger.Fatal(ctx, "could not train email categorizer", zap.Error(err))
			}
			logger.Info(ctx, "email categorizer trained",
				zap.Int("train_samples", report.TrainSamples),
				zap.Int("test_samples", report.TestSamples),
				zap.Float64("accuracy", report.Accuracy),
			)

			if err := model.Save(out); err != nil {
				logger.Fatal(ctx, "could not save email categorizer", zap.Error(err))
			}
			logger.Info(ctx, "email categorizer saved", zap.String("path", out))
		},
	}

	cmd.Flags().String("dataset", cfg.Email.DatasetPath, "JSON dataset path")
	cmd.Flags().String("out", cfg.Email.ModelPath, "Path the model file is written to")

	return cmd
}
