package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/helioworks/artvault/docs"
	"github.com/helioworks/artvault/internal/config"
	"github.com/helioworks/artvault/internal/middleware"
	"github.com/helioworks/artvault/internal/modules/handler"
	"github.com/helioworks/artvault/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	AssetHandler   *handler.AssetHandler
	TagHandler     *handler.TagHandler
	ProjectHandler *handler.ProjectHandler
	RouteHandler   *handler.RouteHandler
	StyleHandler   *handler.StyleHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.BearerAuth(d.Config))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		assets := v1.Group("/assets")
		{
			assets.POST("", d.AssetHandler.Ingest)
			assets.POST("/batch", d.AssetHandler.BatchIngest)
			assets.GET("", d.AssetHandler.ListAssets)
			assets.GET("/feed", d.AssetHandler.Feed)
			assets.GET("/count", d.AssetHandler.CountAssets)
			assets.GET("/search", d.TagHandler.SearchByTags)
			assets.GET("/digest/:digest", d.AssetHandler.ExistsByDigest)
			assets.POST("/digests", d.AssetHandler.LookupDigests)
			assets.GET("/:asset_id", d.AssetHandler.GetAsset)
			assets.PATCH("/:asset_id", d.AssetHandler.UpdateAsset)
			assets.DELETE("/:asset_id", d.AssetHandler.DeleteAsset)

			assets.GET("/:asset_id/tags", d.TagHandler.TagsOfAsset)
			assets.POST("/:asset_id/tags", d.TagHandler.AttachTags)
			assets.DELETE("/:asset_id/tags", d.TagHandler.DetachTags)
			assets.DELETE("/:asset_id/tags/:tag_id", d.TagHandler.DetachTag)

			assets.GET("/:asset_id/projects", d.ProjectHandler.ProjectsOfAsset)
			assets.GET("/:asset_id/routes", d.RouteHandler.RoutesOfAsset)
			assets.GET("/:asset_id/variants", d.StyleHandler.VariantsOf)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", d.TagHandler.ListTags)
			tags.POST("", d.TagHandler.CreateTag)
			tags.PATCH("/:tag_id", d.TagHandler.UpdateTag)
			tags.DELETE("/:tag_id", d.TagHandler.DeleteTag)
		}

		projects := v1.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("/:project_id", d.ProjectHandler.GetProject)
			projects.DELETE("/:project_id", d.ProjectHandler.DeleteProject)

			projects.GET("/:project_id/assets", d.ProjectHandler.AssetsOfProject)
			projects.POST("/:project_id/assets", d.ProjectHandler.AddAssets)
			projects.GET("/:project_id/assets/count", d.ProjectHandler.MemberCount)
			projects.DELETE("/:project_id/assets/:asset_id", d.ProjectHandler.RemoveAsset)

			projects.GET("/:project_id/routes", d.RouteHandler.RoutesOfProject)
			projects.GET("/:project_id/migrations", d.StyleHandler.MigrationsOfProject)
		}

		routes := v1.Group("/routes")
		{
			routes.POST("", d.RouteHandler.CreateRoute)
			routes.POST("/replace", d.RouteHandler.BatchReplace)
			routes.GET("/guid/:guid", d.RouteHandler.GetRouteByGUID)
			routes.GET("/:route_id", d.RouteHandler.GetRoute)
			routes.DELETE("/:route_id", d.RouteHandler.DeactivateRoute)

			routes.PATCH("/:route_id/path", d.RouteHandler.UpdateRoutePath)
			routes.POST("/:route_id/replace", d.RouteHandler.ReplaceAsset)
			routes.POST("/:route_id/rollback", d.RouteHandler.RollbackRoute)
			routes.GET("/:route_id/history", d.RouteHandler.RouteHistory)
		}

		styles := v1.Group("/styles")
		{
			styles.POST("/upload", d.StyleHandler.UploadStyled)
			styles.POST("/migrations", d.StyleHandler.CreateMigration)
			styles.GET("/:style/migrations", d.StyleHandler.MigrationsByStyle)
		}
	}
	return r
}
