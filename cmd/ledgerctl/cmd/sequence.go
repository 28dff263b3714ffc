package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/config"
	dynamoClient "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/repository"
)

var sequenceCompany string

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Show the last entry number issued by the DynamoDB sequencer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.SequenceStore != config.SequenceStoreDynamoDB {
			return fmt.Errorf("SEQUENCE_STORE is %q, the sequence command needs %q", cfg.SequenceStore, config.SequenceStoreDynamoDB)
		}

		client, err := dynamoClient.NewDynamoDBClient(cmd.Context(), cfg.AWSRegion)
		if err != nil {
			return err
		}
		sequencer := dynamodbRepository.NewDynamoDBSequencer(client, cfg.DynamoDBTableName, serviceLogger)

		current, err := sequencer.Current(cmd.Context(), sequenceCompany)
		if err != nil {
			return err
		}
		log.Info("current entry number",
			zap.String("company", sequenceCompany),
			zap.Int64("lastValue", current),
			zap.String("table", cfg.DynamoDBTableName))
		return nil
	},
}

func init() {
	sequenceCmd.Flags().StringVar(&sequenceCompany, "company", "", "company id")
	_ = sequenceCmd.MarkFlagRequired("company")
}
