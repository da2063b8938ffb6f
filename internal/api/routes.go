package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.ServiceInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	analyses := s.router.Group("/analyses")
	{
		analyses.POST("", s.analysisHandler.CreateAnalysis)
		analyses.GET("", s.analysisHandler.ListAnalyses)
		analyses.GET("/:id", s.analysisHandler.GetAnalysis)
		analyses.GET("/:id/timeseries", s.analysisHandler.GetTimeSeries)
		analyses.GET("/:id/summary", s.analysisHandler.GetSummary)
		analyses.GET("/:id/chart", s.analysisHandler.GetChart)
		analyses.POST("/:id/frames", s.analysisHandler.IngestFrames)
		analyses.POST("/:id/finish", s.analysisHandler.FinishAnalysis)
		analyses.DELETE("/:id", s.analysisHandler.CancelAnalysis)
	}
}
