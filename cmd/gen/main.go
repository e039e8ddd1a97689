package main

import (
	"aevum/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.UserProfileModel{},
		model.LabProfileModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.UserDeviceModel{},
		model.DNAKitTypeModel{},
		model.DNAKitOrderModel{},
		model.DNAReportUploadModel{},
		model.DNAReportModel{},
		model.DNAResultModel{},
		model.JournalEntryModel{},
		model.JournalReminderModel{},
		model.CompanionThreadModel{},
		model.CompanionMessageModel{},
		model.SubscriptionPlanModel{},
		model.UserSubscriptionModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
