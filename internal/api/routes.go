package api

import (
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/realtime"
	"github.com/Vibush01/EasyFitTrack/internal/repository"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler onto the router. Role middleware narrows
// each route to the roles the operation is defined for.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	hub *realtime.Hub,
	userRepo repository.UserRepository,
	authService service.AuthService,
	membershipService service.MembershipService,
	scheduleService service.ScheduleService,
	planService service.PlanService,
	announcementService service.AnnouncementService,
	gymService service.GymService,
	macroService service.MacroService,
	analyticsService service.AnalyticsService,
) {
	authHandler := NewAuthHandler(authService)
	membershipHandler := NewMembershipHandler(membershipService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	planHandler := NewPlanHandler(planService)
	announcementHandler := NewAnnouncementHandler(announcementService, userRepo)
	gymHandler := NewGymHandler(gymService)
	macroHandler := NewMacroHandler(macroService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	wsHandler := NewWSHandler(hub, userRepo)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Gym directory and rosters ---
		gymGroup := protected.Group("/gyms")
		{
			gymGroup.GET("", gymHandler.ListGyms)
			gymGroup.GET("/:id", gymHandler.GetGym)
			gymGroup.GET("/:id/members", gymHandler.ListMembers)
			gymGroup.GET("/:id/trainers", gymHandler.ListTrainers)
			gymGroup.GET("/:id/announcements", announcementHandler.ListByGym)
			gymGroup.POST("/:id/trainers", RoleMiddleware(domain.RoleTrainer), gymHandler.JoinAsTrainer)
			gymGroup.DELETE("/:id/members/:memberId", RoleMiddleware(domain.RoleGym), gymHandler.RemoveMember)
			gymGroup.DELETE("/:id", RoleMiddleware(domain.RoleAdmin), gymHandler.DeleteGym)
		}

		// --- Membership request state machine ---
		membershipGroup := protected.Group("/membership-requests")
		{
			membershipGroup.POST("", RoleMiddleware(domain.RoleMember), membershipHandler.CreateRequest)
			membershipGroup.GET("", RoleMiddleware(domain.RoleGym, domain.RoleMember), membershipHandler.ListRequests)
			membershipGroup.PUT("/:id", RoleMiddleware(domain.RoleGym, domain.RoleTrainer), membershipHandler.ResolveRequest)
		}

		// --- Trainer schedules and member bookings ---
		scheduleGroup := protected.Group("/schedules")
		{
			scheduleGroup.POST("", RoleMiddleware(domain.RoleTrainer), scheduleHandler.PostSlot)
			scheduleGroup.GET("", RoleMiddleware(domain.RoleTrainer), scheduleHandler.ListOwnSlots)
			scheduleGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), scheduleHandler.DeleteSlot)
			scheduleGroup.POST("/:id/book", RoleMiddleware(domain.RoleMember), scheduleHandler.BookSlot)
		}
		protected.GET("/trainers/:id/schedules", scheduleHandler.ListTrainerAvailability)
		protected.GET("/bookings", RoleMiddleware(domain.RoleMember), scheduleHandler.ListOwnBookings)

		// --- Plan requests and plans ---
		planRequestGroup := protected.Group("/plan-requests")
		{
			planRequestGroup.POST("", RoleMiddleware(domain.RoleMember), planHandler.RequestPlan)
			planRequestGroup.GET("", RoleMiddleware(domain.RoleTrainer, domain.RoleMember), planHandler.ListPlanRequests)
			planRequestGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.ResolvePlanRequest)
		}

		workoutGroup := protected.Group("/plans/workout")
		{
			workoutGroup.POST("", RoleMiddleware(domain.RoleTrainer), planHandler.CreateWorkoutPlan)
			workoutGroup.GET("", RoleMiddleware(domain.RoleTrainer, domain.RoleMember), planHandler.ListWorkoutPlans)
			workoutGroup.GET("/:id", planHandler.GetWorkoutPlan)
			workoutGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.UpdateWorkoutPlan)
			workoutGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.DeleteWorkoutPlan)
		}

		dietGroup := protected.Group("/plans/diet")
		{
			dietGroup.POST("", RoleMiddleware(domain.RoleTrainer), planHandler.CreateDietPlan)
			dietGroup.GET("", RoleMiddleware(domain.RoleTrainer, domain.RoleMember), planHandler.ListDietPlans)
			dietGroup.GET("/:id", planHandler.GetDietPlan)
			dietGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.UpdateDietPlan)
			dietGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.DeleteDietPlan)
		}

		// --- Announcements ---
		announcementGroup := protected.Group("/announcements")
		{
			announcementGroup.POST("", RoleMiddleware(domain.RoleGym), announcementHandler.Post)
			announcementGroup.GET("", RoleMiddleware(domain.RoleGym, domain.RoleTrainer, domain.RoleMember), announcementHandler.ListFeed)
			announcementGroup.PUT("/:id", RoleMiddleware(domain.RoleGym), announcementHandler.Update)
			announcementGroup.DELETE("/:id", RoleMiddleware(domain.RoleGym), announcementHandler.Delete)
		}

		// --- Live announcement feed ---
		protected.GET("/ws", RoleMiddleware(domain.RoleGym, domain.RoleTrainer, domain.RoleMember), wsHandler.Subscribe)

		// --- Member nutrition tracking ---
		macroGroup := protected.Group("/macros")
		macroGroup.Use(RoleMiddleware(domain.RoleMember))
		{
			macroGroup.POST("", macroHandler.LogMacros)
			macroGroup.GET("", macroHandler.ListMacros)
		}

		// --- Usage analytics ---
		analyticsGroup := protected.Group("/analytics")
		{
			analyticsGroup.POST("/log", analyticsHandler.LogEvent)
			analyticsGroup.GET("/events", RoleMiddleware(domain.RoleAdmin), analyticsHandler.ListEvents)
		}
	}
}
