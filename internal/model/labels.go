package model

// Industry is the business domain a project was delivered for. The string
// value is the stored display text.
type Industry string

const (
	IndustryWeb                Industry = "Web・EC"
	IndustryFinance            Industry = "金融"
	IndustryManufacturing      Industry = "製造業"
	IndustryRetail             Industry = "流通・小売"
	IndustryHealthcare         Industry = "医療・ヘルスケア"
	IndustryEducation          Industry = "教育"
	IndustryGovernment         Industry = "官公庁・自治体"
	IndustryConsulting         Industry = "コンサルティング"
	IndustryMedia              Industry = "メディア・広告"
	IndustryLogistics          Industry = "物流"
	IndustryTelecommunications Industry = "通信・インフラ"
	IndustryOther              Industry = "その他"
)

// Industries lists every industry in display order.
var Industries = []Industry{
	IndustryWeb, IndustryFinance, IndustryManufacturing, IndustryRetail,
	IndustryHealthcare, IndustryEducation, IndustryGovernment, IndustryConsulting,
	IndustryMedia, IndustryLogistics, IndustryTelecommunications, IndustryOther,
}

// Role is the position held on a project.
type Role string

const (
	RoleProgrammer        Role = "プログラマー"
	RoleSystemEngineer    Role = "システムエンジニア"
	RoleProjectLeader     Role = "プロジェクトリーダー"
	RoleArchitect         Role = "アーキテクト"
	RoleTechLead          Role = "テックリード"
	RoleFullStackEngineer Role = "フルスタックエンジニア"
	RoleFrontendEngineer  Role = "フロントエンドエンジニア"
	RoleBackendEngineer   Role = "バックエンドエンジニア"
	RoleOther             Role = "その他"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleProgrammer, RoleSystemEngineer, RoleProjectLeader, RoleArchitect,
	RoleTechLead, RoleFullStackEngineer, RoleFrontendEngineer, RoleBackendEngineer,
	RoleOther,
}

// TeamSize buckets the size of the project team.
type TeamSize string

const (
	TeamSizeSmall      TeamSize = "小規模（5名未満）"
	TeamSizeMedium     TeamSize = "中規模（5-20名）"
	TeamSizeLarge      TeamSize = "大規模（20名以上）"
	TeamSizeIndividual TeamSize = "個人"
)

// TeamSizes lists every team size in display order.
var TeamSizes = []TeamSize{
	TeamSizeSmall, TeamSizeMedium, TeamSizeLarge, TeamSizeIndividual,
}

// TechnologyCategory groups technologies in the catalog. Values are stable
// storage keys; use DisplayName for rendering.
type TechnologyCategory string

const (
	CategoryFrontend  TechnologyCategory = "frontend"
	CategoryBackend   TechnologyCategory = "backend"
	CategoryFramework TechnologyCategory = "framework"
	CategoryDatabase  TechnologyCategory = "database"
	CategoryCloud     TechnologyCategory = "cloud"
	CategoryDevTools  TechnologyCategory = "devtools"
	CategoryOther     TechnologyCategory = "other"
)

// TechnologyCategories lists every category in display order.
var TechnologyCategories = []TechnologyCategory{
	CategoryFrontend, CategoryBackend, CategoryFramework, CategoryDatabase,
	CategoryCloud, CategoryDevTools, CategoryOther,
}

var categoryDisplayNames = map[TechnologyCategory]string{
	CategoryFrontend:  "フロントエンド",
	CategoryBackend:   "バックエンド",
	CategoryFramework: "フレームワーク",
	CategoryDatabase:  "データベース",
	CategoryCloud:     "クラウド・インフラ",
	CategoryDevTools:  "開発ツール",
	CategoryOther:     "その他",
}

// DisplayName returns the label shown for the category.
func (c TechnologyCategory) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return categoryDisplayNames[CategoryOther]
}

// DevelopmentProcess is one of the fixed development stages. The string
// value doubles as the Process record name.
type DevelopmentProcess string

const (
	ProcessRequirements       DevelopmentProcess = "要件定義"
	ProcessBasicDesign        DevelopmentProcess = "基本設計"
	ProcessDetailDesign       DevelopmentProcess = "詳細設計"
	ProcessImplementation     DevelopmentProcess = "実装"
	ProcessUnitTest           DevelopmentProcess = "単体テスト"
	ProcessIntegrationTest    DevelopmentProcess = "結合テスト"
	ProcessSystemTest         DevelopmentProcess = "システムテスト"
	ProcessUserAcceptanceTest DevelopmentProcess = "受入テスト"
	ProcessDeployment         DevelopmentProcess = "リリース・デプロイ"
	ProcessMaintenance        DevelopmentProcess = "運用・保守"
)

// DevelopmentProcesses is the canonical stage sequence. A stage's Order is
// its index in this slice.
var DevelopmentProcesses = []DevelopmentProcess{
	ProcessRequirements, ProcessBasicDesign, ProcessDetailDesign,
	ProcessImplementation, ProcessUnitTest, ProcessIntegrationTest,
	ProcessSystemTest, ProcessUserAcceptanceTest, ProcessDeployment,
	ProcessMaintenance,
}

var processDescriptions = map[DevelopmentProcess]string{
	ProcessRequirements:       "システムの機能や性能要件を定義",
	ProcessBasicDesign:        "システム全体の構成や機能を設計",
	ProcessDetailDesign:       "プログラムの詳細な設計書を作成",
	ProcessImplementation:     "設計書に基づいてプログラムを作成",
	ProcessUnitTest:           "個別のプログラムをテスト",
	ProcessIntegrationTest:    "複数のプログラムを組み合わせてテスト",
	ProcessSystemTest:         "システム全体の動作をテスト",
	ProcessUserAcceptanceTest: "ユーザー目線でシステムを検証",
	ProcessDeployment:         "本番環境への配置・公開",
	ProcessMaintenance:        "システムの保守・改修作業",
}

// Description returns the one-line explanation of the stage.
func (p DevelopmentProcess) Description() string {
	return processDescriptions[p]
}

// ProcessOrder returns the canonical order of a stage name.
func ProcessOrder(name string) (int, bool) {
	for i, p := range DevelopmentProcesses {
		if string(p) == name {
			return i, true
		}
	}
	return 0, false
}
