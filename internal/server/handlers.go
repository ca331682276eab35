package server

import (
	"strings"

	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "UP"})
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.TableName) == "" {
		return JSONError(c, fiber.StatusBadRequest, "Table name is required")
	}
	if len(req.JSONData) == 0 || string(req.JSONData) == "null" {
		return JSONError(c, fiber.StatusBadRequest, "JSON data is required")
	}

	res, err := s.service.GenerateSQL(c.UserContext(), req.toDomain())
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.JSON(newGenerationResponse(res))
}

// handleValidate takes the raw JSON document as the request body.
func (s *Server) handleValidate(c *fiber.Ctx) error {
	tableName := c.Query("tableName")
	if strings.TrimSpace(tableName) == "" {
		return JSONError(c, fiber.StatusBadRequest, "tableName query parameter is required")
	}

	report, err := s.service.ValidateJSON(c.UserContext(), tableName, string(c.Body()))
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.JSON(report)
}

func (s *Server) handleDDL(c *fiber.Ctx) error {
	name := c.Params("name")

	var (
		sql string
		err error
	)
	if c.QueryBool("drop") {
		sql, err = s.service.DropTable(c.UserContext(), name, c.QueryBool("ifExists"))
	} else {
		sql, err = s.service.CreateTable(c.UserContext(), name)
	}
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.JSON(fiber.Map{"tableName": name, "sql": sql})
}

func (s *Server) handleListTables(c *fiber.Ctx) error {
	mappings, err := s.service.ListMappings(c.UserContext())
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}

	docs := make([]mapping.Document, 0, len(mappings))
	for _, m := range mappings {
		docs = append(docs, mapping.FromTable(m))
	}
	return c.JSON(docs)
}

func (s *Server) handleGetTable(c *fiber.Ctx) error {
	m, err := s.service.GetMapping(c.UserContext(), c.Params("name"))
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.JSON(mapping.FromTable(m))
}

func (s *Server) handleCreateTable(c *fiber.Ctx) error {
	m, err := mapping.Decode(c.Body(), mapping.FormatJSON)
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}

	saved, err := s.service.SaveMapping(c.UserContext(), m)
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(mapping.FromTable(saved))
}

// handleUpdateTable saves the body under the name in the path, whatever
// tableName the body carries.
func (s *Server) handleUpdateTable(c *fiber.Ctx) error {
	var doc mapping.Document
	if err := c.BodyParser(&doc); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	doc.TableName = c.Params("name")

	if err := mapping.Validate(doc); err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}

	saved, err := s.service.SaveMapping(c.UserContext(), mapping.ToTable(doc))
	if err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.JSON(mapping.FromTable(saved))
}

func (s *Server) handleDeleteTable(c *fiber.Ctx) error {
	if err := s.service.DeleteMapping(c.UserContext(), c.Params("name")); err != nil {
		return JSONError(c, errorStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
