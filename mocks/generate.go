package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/statarb-lab/pairtrade/internal/strategy Strategy,SignalPredictor
//go:generate mockgen -destination=./mock_risk_manager.go -package=mocks github.com/statarb-lab/pairtrade/internal/risk Manager
//go:generate mockgen -destination=./mock_engineer.go -package=mocks github.com/statarb-lab/pairtrade/internal/features Engineer
